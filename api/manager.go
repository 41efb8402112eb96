package api

import (
	"tindahan_server/api/catalog"
	"tindahan_server/api/debug"
	"tindahan_server/api/health"
	"tindahan_server/api/media"
	"tindahan_server/api/middleware"
	"tindahan_server/api/seller"
	"tindahan_server/database"
	"tindahan_server/services"
	"tindahan_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	sellerRoutes  *seller.SellerRoutesManager
	catalogRoutes *catalog.CatalogRoutesManager
	mediaRoutes   *media.MediaRoutesManager
	healthRoutes  *health.HealthRoutesManager
	debugRoutes   *debug.DebugRoutesManager
}

func NewRouterManager(logger *gecho.Logger, db *database.DB, cfg *structs.Config, mw *middleware.Middleware) *routerManager {
	sm := services.NewServiceManager(logger, cfg, db)

	return &routerManager{
		sellerRoutes:  seller.NewSellerRoutesManager(logger, sm.ComposerService, sm.CatalogService, sm.ProductService, mw),
		catalogRoutes: catalog.NewCatalogRoutesManager(logger, sm.CatalogService),
		mediaRoutes:   media.NewMediaRoutesManager(logger, sm.MediaService),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
		debugRoutes:   debug.NewDebugRoutesManager(sm.CacheService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.sellerRoutes.RegisterRoutes(r)
	rm.catalogRoutes.RegisterRoutes(r)
	rm.mediaRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
