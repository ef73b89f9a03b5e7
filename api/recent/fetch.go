package recent

import (
	"net/http"
	"strconv"

	"giftbasket_server/api/middleware"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// GetRecentlyViewed handles GET /recent, returning the viewer's
// recently-viewed products newest first, hydrated from the catalog.
// Products that no longer resolve are silently skipped.
func (rrm *RecentRoutesManager) GetRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.ViewerIdentity(r.Context())
	if !ok {
		rrm.logger.Error("Recently-viewed request without viewer identity")
		gecho.InternalServerError(w,
			gecho.WithMessage("error.recent.noSession"),
			gecho.Send(),
		)
		return
	}

	products := rrm.recentService.RecentProducts(r.Context(), owner)

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"count":    len(products),
		}),
		gecho.Send(),
	)
}

// RecordView handles POST /recent/{id}, letting clients record a view
// for surfaces that render product details without a detail fetch.
func (rrm *RecentRoutesManager) RecordView(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || productID <= 0 {
		gecho.BadRequest(w,
			gecho.WithMessage("error.product.invalidId"),
			gecho.Send(),
		)
		return
	}

	owner, ok := middleware.ViewerIdentity(r.Context())
	if !ok {
		rrm.logger.Error("Recently-viewed request without viewer identity")
		gecho.InternalServerError(w,
			gecho.WithMessage("error.recent.noSession"),
			gecho.Send(),
		)
		return
	}

	if err := rrm.recentService.RecordView(owner, productID); err != nil {
		rrm.logger.Warn("Failed to record product view",
			gecho.Field("owner", owner),
			gecho.Field("product_id", productID),
			gecho.Field("error", err),
		)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.recent.recordFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"product_id": productID}),
		gecho.Send(),
	)
}
