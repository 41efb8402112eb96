package debug

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ClearCache flushes the cache. A ?pattern= query narrows the flush to
// matching keys (e.g. product_view:*) instead of the whole database.
func (drm *DebugRoutesManager) ClearCache(w http.ResponseWriter, r *http.Request) {
	var err error
	if pattern := r.URL.Query().Get("pattern"); pattern != "" {
		err = drm.cacheService.DeletePattern(pattern)
	} else {
		err = drm.cacheService.ClearAll()
	}
	if err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("error.cache.clearFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.cache.cleared"),
		gecho.Send(),
	)
}
