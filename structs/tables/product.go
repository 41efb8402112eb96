package tables

import (
	"time"
	"tindahan_server/structs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the one canonical row per committed product. Variants and
// attributes are opaque jsonb blobs so unknown attribute keys survive
// round-trips; images are URL references into the media store.
type Product struct {
	tableName         struct{}              `bun:"table:products,alias:p"`
	ID                uuid.UUID             `bun:"id,pk,type:uuid" json:"id"`
	SellerID          uuid.UUID             `bun:"seller_id,notnull,type:uuid" json:"seller_id"`
	Name              string                `bun:"name,notnull" json:"name"`
	Category          string                `bun:"category,notnull" json:"category"`
	Subcategory       string                `bun:"subcategory" json:"subcategory,omitempty"`
	Description       string                `bun:"description" json:"description,omitempty"`
	Materials         string                `bun:"materials" json:"materials,omitempty"`
	DetailsFit        string                `bun:"details_fit" json:"details_fit,omitempty"`
	SalePrice         decimal.Decimal       `bun:"sale_price,notnull,type:numeric(12,2)" json:"sale_price"`
	CompareAtPrice    *decimal.Decimal      `bun:"compare_at_price,type:numeric(12,2)" json:"compare_at_price,omitempty"`
	DiscountType      structs.DiscountType  `bun:"discount_type,notnull" json:"discount_type"`
	DiscountValue     decimal.Decimal       `bun:"discount_value,notnull,type:numeric(12,2)" json:"discount_value"`
	VoucherType       string                `bun:"voucher_type" json:"voucher_type,omitempty"`
	PrimaryImage      string                `bun:"primary_image,notnull" json:"primary_image"`
	SecondaryImage    string                `bun:"secondary_image" json:"secondary_image,omitempty"`
	TotalStock        int                   `bun:"total_stock,notnull" json:"total_stock"`
	LowStockThreshold int                   `bun:"low_stock_threshold,notnull" json:"low_stock_threshold"`
	Status            structs.ProductStatus `bun:"status,notnull" json:"status"`
	Variants          structs.VariantList   `bun:"variants,type:jsonb" json:"variants,omitempty"`
	Attributes        structs.Attributes    `bun:"attributes,type:jsonb" json:"attributes,omitempty"`
	CreatedAt         time.Time             `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt         time.Time             `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}
