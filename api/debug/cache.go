package debug

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ClearCache handles POST /debug/cache/clear, flushing cached product
// records, wishlist mirrors and recently-viewed lists in one sweep.
func (drm *DebugRoutesManager) ClearCache(w http.ResponseWriter, r *http.Request) {
	err := drm.cacheService.ClearAll()
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
