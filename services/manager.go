package services

import (
	"tindahan_server/database"
	"tindahan_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CacheService    *CacheService
	MediaService    *MediaService
	DraftService    *DraftService
	ProductService  *ProductService
	CatalogService  *CatalogService
	ComposerService *ComposerService
	HealthService   *HealthService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	mediaService := NewMediaService(logger, cfg)
	draftService := NewDraftService(logger, cfg, cacheService)
	productService := NewProductService(logger, cfg, cacheService)
	catalogService := NewCatalogService(logger, cfg, cacheService, productService)
	composerService := NewComposerService(logger, cfg, mediaService, draftService, productService, catalogService)
	healthService := NewHealthService(logger, db, cacheService)

	return &ServiceManager{
		CacheService:    cacheService,
		MediaService:    mediaService,
		DraftService:    draftService,
		ProductService:  productService,
		CatalogService:  catalogService,
		ComposerService: composerService,
		HealthService:   healthService,
	}
}
