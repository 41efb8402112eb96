package services

import (
	"context"
	"tindahan_server/database"
	"tindahan_server/lib"
	"tindahan_server/structs"
	"tindahan_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// CatalogService shapes committed product rows into the read models the
// storefront renders: per-color photo and stock projections, availability
// flags and the ordered size breakdown for one color.
type CatalogService struct {
	logger   *gecho.Logger
	config   *structs.Config
	cache    *CacheService
	products *ProductService
}

func NewCatalogService(logger *gecho.Logger, cfg *structs.Config, cache *CacheService, products *ProductService) *CatalogService {
	return &CatalogService{
		logger:   logger,
		config:   cfg,
		cache:    cache,
		products: products,
	}
}

// BuildProductView projects one product row into the catalog read model
func (cts *CatalogService) BuildProductView(product *tables.Product) *structs.ProductView {
	colors := product.Variants.Colors()

	variantPhotos := make(map[string]structs.ColorPhotos, len(colors))
	stockData := make(map[string]map[string]int, len(colors))
	inStockByColor := make(map[string]bool, len(colors))

	for _, color := range colors {
		primary := product.Variants.PhotoFor(color)
		if primary == "" {
			// Colors without their own swatch photo fall back to the
			// product-level imagery
			primary = product.PrimaryImage
		}
		variantPhotos[color] = structs.ColorPhotos{
			Primary:   primary,
			Secondary: product.SecondaryImage,
			Hex:       product.Variants.HexFor(color),
		}

		sizes := product.Variants.SizesFor(color)
		cells := make(map[string]int, len(sizes))
		for _, s := range sizes {
			cells[s.Size] = s.Stock
		}
		stockData[color] = cells
		inStockByColor[color] = product.Variants.InStock(color)
	}

	totalStock := product.Variants.TotalStock()

	return &structs.ProductView{
		ID:                product.ID,
		SellerID:          product.SellerID,
		Name:              product.Name,
		Category:          product.Category,
		Subcategory:       product.Subcategory,
		Description:       product.Description,
		Materials:         product.Materials,
		DetailsFit:        product.DetailsFit,
		SalePrice:         product.SalePrice,
		CompareAtPrice:    product.CompareAtPrice,
		DiscountType:      product.DiscountType,
		DiscountValue:     product.DiscountValue,
		VoucherType:       product.VoucherType,
		PrimaryImage:      product.PrimaryImage,
		SecondaryImage:    product.SecondaryImage,
		TotalStock:        totalStock,
		LowStockThreshold: product.LowStockThreshold,
		StockStatus:       structs.LevelForStock(totalStock, product.LowStockThreshold),
		Status:            product.Status,
		Attributes:        product.Attributes,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
		Colors:            colors,
		VariantPhotos:     variantPhotos,
		StockData:         stockData,
		InStockAny:        totalStock > 0,
		InStockByColor:    inStockByColor,
	}
}

// GetProductView returns the read model for one active product, cache-aside
func (cts *CatalogService) GetProductView(ctx context.Context, id uuid.UUID) (*structs.ProductView, error) {
	if view, err := cts.cache.GetProductView(id); err == nil && view != nil {
		return view, nil
	}

	product, err := cts.products.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	view := cts.BuildProductView(product)

	if err := cts.cache.SetProductView(view); err != nil {
		cts.logger.Warn("Failed to cache product view",
			gecho.Field("product_id", id.String()),
			gecho.Field("error", err),
		)
	}

	return view, nil
}

// SizesForColor returns the ordered size breakdown for one color of an
// active product. Sizes follow the catalog order, not insertion order.
func (cts *CatalogService) SizesForColor(ctx context.Context, id uuid.UUID, color string) ([]structs.SizeInfo, error) {
	view, err := cts.GetProductView(ctx, id)
	if err != nil {
		return nil, err
	}

	cells, ok := view.StockData[color]
	if !ok {
		return nil, lib.NewError(lib.KindNotFound, "color not found")
	}

	infos := make([]structs.SizeInfo, 0, len(cells))
	for size, stock := range cells {
		infos = append(infos, structs.SizeInfo{Size: size, Stock: stock, InStock: stock > 0})
	}
	structs.SortSizeInfos(infos)

	return infos, nil
}

// ListCatalog returns a page of active products as read models
func (cts *CatalogService) ListCatalog(ctx context.Context, opts CatalogListOptions) (*database.PaginationResult[structs.ProductView], error) {
	page, err := cts.products.ListCatalog(ctx, opts)
	if err != nil {
		return nil, err
	}

	views := make([]structs.ProductView, 0, len(page.Data))
	for i := range page.Data {
		views = append(views, *cts.BuildProductView(&page.Data[i]))
	}

	return &database.PaginationResult[structs.ProductView]{
		Data:       views,
		Pagination: page.Pagination,
	}, nil
}

// ListSellerProducts returns a seller's own products as read models,
// including inactive ones
func (cts *CatalogService) ListSellerProducts(ctx context.Context, sellerID uuid.UUID, status structs.ProductStatus, pageNum, pageSize int) (*database.PaginationResult[structs.ProductView], error) {
	page, err := cts.products.ListBySeller(ctx, sellerID, status, pageNum, pageSize)
	if err != nil {
		return nil, err
	}

	views := make([]structs.ProductView, 0, len(page.Data))
	for i := range page.Data {
		views = append(views, *cts.BuildProductView(&page.Data[i]))
	}

	return &database.PaginationResult[structs.ProductView]{
		Data:       views,
		Pagination: page.Pagination,
	}, nil
}
