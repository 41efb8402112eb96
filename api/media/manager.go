package media

import (
	"net/http"
	"tindahan_server/handling"
	"tindahan_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// MediaRoutesManager serves stored images back under the public prefix.
type MediaRoutesManager struct {
	logger       *gecho.Logger
	mediaService *services.MediaService
}

func NewMediaRoutesManager(logger *gecho.Logger, mediaService *services.MediaService) *MediaRoutesManager {
	return &MediaRoutesManager{
		logger:       logger,
		mediaService: mediaService,
	}
}

func (mrm *MediaRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/uploads/*", mrm.ServeMedia)
}

func (mrm *MediaRoutesManager) ServeMedia(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := mrm.mediaService.Resolve(r.URL.Path)
	if err != nil {
		handling.HandleError(err, "Unable to serve media", mrm.logger, w)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
