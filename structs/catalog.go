package structs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ColorPhotos carries the imagery a product page shows for one color.
type ColorPhotos struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
	Hex       string `json:"hex"`
}

// ProductView is the catalog read model: canonical product fields plus the
// per-color projections product pages render from.
type ProductView struct {
	ID                uuid.UUID        `json:"id"`
	SellerID          uuid.UUID        `json:"seller_id"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	Subcategory       string           `json:"subcategory,omitempty"`
	Description       string           `json:"description,omitempty"`
	Materials         string           `json:"materials,omitempty"`
	DetailsFit        string           `json:"details_fit,omitempty"`
	SalePrice         decimal.Decimal  `json:"sale_price"`
	CompareAtPrice    *decimal.Decimal `json:"compare_at_price,omitempty"`
	DiscountType      DiscountType     `json:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	VoucherType       string           `json:"voucher_type,omitempty"`
	PrimaryImage      string           `json:"primary_image"`
	SecondaryImage    string           `json:"secondary_image,omitempty"`
	TotalStock        int              `json:"total_stock"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	StockStatus       StockLevel       `json:"stock_status"`
	Status            ProductStatus    `json:"status"`
	Attributes        Attributes       `json:"attributes,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`

	Colors         []string                  `json:"colors"`
	VariantPhotos  map[string]ColorPhotos    `json:"variant_photos"`
	StockData      map[string]map[string]int `json:"stock_data"`
	InStockAny     bool                      `json:"in_stock_any"`
	InStockByColor map[string]bool           `json:"in_stock_by_color"`
}
