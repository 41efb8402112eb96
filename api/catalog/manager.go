package catalog

import (
	"tindahan_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// CatalogRoutesManager serves the public read surface shoppers hit.
type CatalogRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
}

func NewCatalogRoutesManager(logger *gecho.Logger, catalogService *services.CatalogService) *CatalogRoutesManager {
	return &CatalogRoutesManager{
		logger:         logger,
		catalogService: catalogService,
	}
}

func (crm *CatalogRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", crm.ListProducts)
	r.Get("/api/product/{id}", crm.GetProduct)
	r.Get("/api/product/{id}/sizes/{color}", crm.GetSizesForColor)
}
