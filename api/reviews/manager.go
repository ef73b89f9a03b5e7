package reviews

import (
	"giftbasket_server/api/middleware"
	"giftbasket_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ReviewRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
	mw             *middleware.Middleware
}

func NewReviewRoutesManager(
	logger *gecho.Logger,
	catalogService *services.CatalogService,
	mw *middleware.Middleware,
) *ReviewRoutesManager {
	return &ReviewRoutesManager{
		logger:         logger,
		catalogService: catalogService,
		mw:             mw,
	}
}

func (rrm *ReviewRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products/{id}/reviews", rrm.FetchReviews)

	r.Group(func(r chi.Router) {
		r.Use(rrm.mw.UserAuthMiddleware)
		r.Get("/products/{id}/reviews/eligibility", rrm.CheckEligibility)
		r.Post("/reviews", rrm.SubmitReview)
	})
}
