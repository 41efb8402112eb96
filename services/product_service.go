package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"tindahan_server/database"
	"tindahan_server/lib"
	"tindahan_server/structs"
	"tindahan_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProductService owns the committed products table. Everything behind it
// assumes rows already satisfy the catalog invariants, so this service
// re-checks them at the write boundary instead of trusting callers.
type ProductService struct {
	logger *gecho.Logger
	config *structs.Config
	cache  *CacheService
}

func NewProductService(logger *gecho.Logger, cfg *structs.Config, cache *CacheService) *ProductService {
	return &ProductService{
		logger: logger,
		config: cfg,
		cache:  cache,
	}
}

// validateRow enforces the row-level invariants every committed product must hold
func (ps *ProductService) validateRow(product *tables.Product) error {
	if product.Name == "" || len(product.Name) > structs.MaxNameLength {
		return lib.ValidationFailed(lib.FieldError{Field: "name", Message: "must be between 1 and 150 characters"})
	}
	if product.Category == "" {
		return lib.ValidationFailed(lib.FieldError{Field: "category", Message: "is required"})
	}
	if product.SalePrice.IsNegative() {
		return lib.ValidationFailed(lib.FieldError{Field: "sale_price", Message: "must not be negative"})
	}
	if product.CompareAtPrice != nil && product.CompareAtPrice.LessThan(product.SalePrice) {
		return lib.ValidationFailed(lib.FieldError{Field: "compare_at_price", Message: "must not be below the sale price"})
	}
	if product.PrimaryImage == "" {
		return lib.ValidationFailed(lib.FieldError{Field: "primary_image", Message: "is required"})
	}
	if len(product.Variants) == 0 {
		return lib.ValidationFailed(lib.FieldError{Field: "variants", Message: "at least one variant is required"})
	}
	if !product.Status.Valid() {
		return lib.ValidationFailed(lib.FieldError{Field: "status", Message: "is invalid"})
	}

	// total_stock is derived, never client-supplied
	if product.TotalStock != product.Variants.TotalStock() {
		return lib.ValidationFailed(lib.FieldError{Field: "total_stock", Message: "does not match variant stock sum"})
	}

	return nil
}

// InsertActive inserts a fully composed product in active status. The guard
// runs inside the same transaction as the insert: if it fails the row is
// rolled back, so callers can stack their own uniqueness checks (like the
// draft commit marker) on top without risking a stranded product.
func (ps *ProductService) InsertActive(ctx context.Context, product *tables.Product, guard func(*tables.Product) error) (*tables.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.Status = structs.StatusActive
	product.TotalStock = product.Variants.TotalStock()
	if product.LowStockThreshold <= 0 {
		product.LowStockThreshold = structs.DefaultLowStockThreshold
	}

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := ps.validateRow(product); err != nil {
		return nil, err
	}

	inserted, err := database.TransactionWithResult(ctx, func(ctx context.Context, tx bun.Tx) (*tables.Product, error) {
		if _, err := tx.NewInsert().Model(product).Exec(ctx); err != nil {
			return nil, lib.MapPgError(err)
		}
		if guard != nil {
			if err := guard(product); err != nil {
				return nil, err
			}
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}

	ps.logger.Info("Product committed",
		gecho.Field("product_id", inserted.ID.String()),
		gecho.Field("seller_id", inserted.SellerID.String()),
	)

	return inserted, nil
}

// Get fetches a product by id, regardless of status or owner
func (ps *ProductService) Get(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	product, err := database.FindByID[tables.Product](database.GetInstance(), ctx, id)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.NewError(lib.KindNotFound, "product not found")
	}
	return product, nil
}

// GetActive fetches a product visible to shoppers
func (ps *ProductService) GetActive(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	product, err := database.Query[tables.Product](database.GetInstance()).
		Where("id", id).
		Where("status", structs.StatusActive).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.NewError(lib.KindNotFound, "product not found")
	}
	return product, nil
}

// GetOwned fetches a product and verifies the seller owns it
func (ps *ProductService) GetOwned(ctx context.Context, sellerID, id uuid.UUID) (*tables.Product, error) {
	product, err := ps.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, lib.NewError(lib.KindForbidden, "product belongs to another seller")
	}
	return product, nil
}

// EditOwned reloads the row under a row lock, applies mutate, and writes the
// result back inside one transaction, so a read-modify-write edit lands on
// fresh state even when edits race. The updated_at stamp always moves
// forward so concurrent edits never leave a stale timestamp behind.
func (ps *ProductService) EditOwned(ctx context.Context, sellerID, id uuid.UUID, mutate func(*tables.Product) error) (*tables.Product, error) {
	product := new(tables.Product)

	err := database.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(product).Where("id = ?", id).For("UPDATE").Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return lib.NewError(lib.KindNotFound, "product not found")
			}
			return lib.MapPgError(err)
		}
		if product.SellerID != sellerID {
			return lib.NewError(lib.KindForbidden, "product belongs to another seller")
		}

		if err := mutate(product); err != nil {
			return err
		}

		now := time.Now().UTC()
		if !now.After(product.UpdatedAt) {
			now = product.UpdatedAt.Add(time.Millisecond)
		}
		product.UpdatedAt = now
		product.TotalStock = product.Variants.TotalStock()

		if err := ps.validateRow(product); err != nil {
			return err
		}

		if _, err := tx.NewUpdate().Model(product).WherePK().Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.invalidateView(product.ID)
	return product, nil
}

// SetStatus flips a product between active and inactive
func (ps *ProductService) SetStatus(ctx context.Context, sellerID, id uuid.UUID, status structs.ProductStatus) error {
	if !status.Valid() {
		return lib.ValidationFailed(lib.FieldError{Field: "status", Message: "is invalid"})
	}

	if _, err := ps.GetOwned(ctx, sellerID, id); err != nil {
		return err
	}

	_, err := database.UpdateByID[tables.Product](database.GetInstance(), ctx, id, map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return lib.MapPgError(err)
	}

	ps.invalidateView(id)
	return nil
}

// Delete hard-deletes a product. Rows referenced by carts or orders fail the
// foreign key check and surface as an in-use conflict instead.
func (ps *ProductService) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	if _, err := ps.GetOwned(ctx, sellerID, id); err != nil {
		return err
	}

	affected, err := database.DeleteByID[tables.Product](database.GetInstance(), ctx, id)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.NewError(lib.KindNotFound, "product not found")
	}

	ps.invalidateView(id)

	ps.logger.Info("Product deleted",
		gecho.Field("product_id", id.String()),
		gecho.Field("seller_id", sellerID.String()),
	)

	return nil
}

// CatalogListOptions narrows the public catalog listing
type CatalogListOptions struct {
	Category   string
	NamePrefix string
	Page       int
	PageSize   int
}

// ListCatalog returns active products for the public catalog with pagination
func (ps *ProductService) ListCatalog(ctx context.Context, opts CatalogListOptions) (*database.PaginationResult[tables.Product], error) {
	q := database.Query[tables.Product](database.GetInstance()).
		Where("status", structs.StatusActive).
		OrderBy("created_at", database.DESC)

	if opts.Category != "" {
		q = q.Where("category", opts.Category)
	}
	if opts.NamePrefix != "" {
		q = q.WhereLike("name", escapeLikePattern(opts.NamePrefix)+"%")
	}

	result, err := database.Paginate(q, ctx, opts.Page, opts.PageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

// ListBySeller returns a seller's own products, optionally filtered by status
func (ps *ProductService) ListBySeller(ctx context.Context, sellerID uuid.UUID, status structs.ProductStatus, page, pageSize int) (*database.PaginationResult[tables.Product], error) {
	q := database.Query[tables.Product](database.GetInstance()).
		Where("seller_id", sellerID).
		OrderBy("updated_at", database.DESC)

	if status != "" {
		if !status.Valid() {
			return nil, lib.ValidationFailed(lib.FieldError{Field: "status", Message: "is invalid"})
		}
		q = q.Where("status", status)
	}

	result, err := database.Paginate(q, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

// AdjustStock applies a stock delta to a single variant cell and keeps the
// derived total in sync. Negative results are rejected.
func (ps *ProductService) AdjustStock(ctx context.Context, sellerID, id uuid.UUID, color, size string, delta int) (*tables.Product, error) {
	return ps.EditOwned(ctx, sellerID, id, func(product *tables.Product) error {
		return applyStockDelta(product, color, size, delta)
	})
}

// applyStockDelta mutates one variant cell in place
func applyStockDelta(product *tables.Product, color, size string, delta int) error {
	found := false
	for vi := range product.Variants {
		if product.Variants[vi].Color != color {
			continue
		}
		for si := range product.Variants[vi].SizeStocks {
			if product.Variants[vi].SizeStocks[si].Size != size {
				continue
			}
			next := product.Variants[vi].SizeStocks[si].Stock + delta
			if next < 0 {
				return lib.NewError(lib.KindNegativeStock,
					fmt.Sprintf("stock for %s/%s cannot go below zero", color, size))
			}
			product.Variants[vi].SizeStocks[si].Stock = next
			found = true
		}
	}
	if !found {
		return lib.NewError(lib.KindNotFound, fmt.Sprintf("no variant cell %s/%s", color, size))
	}
	return nil
}

func (ps *ProductService) invalidateView(id uuid.UUID) {
	if err := ps.cache.InvalidateProductView(id); err != nil {
		ps.logger.Warn("Failed to invalidate product view cache",
			gecho.Field("product_id", id.String()),
			gecho.Field("error", err),
		)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern escapes LIKE metacharacters in user-supplied prefixes
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}
