package seller

import (
	"tindahan_server/api/middleware"
	"tindahan_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// SellerRoutesManager owns the authenticated authoring surface: step
// submits, preview, commit and product management.
type SellerRoutesManager struct {
	logger          *gecho.Logger
	composerService *services.ComposerService
	catalogService  *services.CatalogService
	productService  *services.ProductService
	mw              *middleware.Middleware
}

func NewSellerRoutesManager(
	logger *gecho.Logger,
	composerService *services.ComposerService,
	catalogService *services.CatalogService,
	productService *services.ProductService,
	mw *middleware.Middleware,
) *SellerRoutesManager {
	return &SellerRoutesManager{
		logger:          logger,
		composerService: composerService,
		catalogService:  catalogService,
		productService:  productService,
		mw:              mw,
	}
}

func (srm *SellerRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/seller", func(r chi.Router) {
		r.Use(srm.mw.SellerAuthMiddleware)

		r.Post("/add_product", srm.SubmitStepOne)
		r.Post("/add_product_description", srm.SubmitStepTwo)
		r.Post("/add_product_stocks", srm.SubmitStepThree)

		r.Get("/add_product_preview", srm.PreviewDraft)
		r.Post("/add_product_preview", srm.CommitDraft)

		r.Get("/products", srm.ListProducts)
		r.Post("/product/{id}/update", srm.EditProduct)
		r.Post("/product/{id}/status", srm.SetProductStatus)
		r.Post("/product/{id}/stock", srm.AdjustProductStock)
		r.Post("/product/{id}/delete", srm.DeleteProduct)
	})
}
