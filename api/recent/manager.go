package recent

import (
	"giftbasket_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type RecentRoutesManager struct {
	logger        *gecho.Logger
	recentService *services.RecentService
}

func NewRecentRoutesManager(
	logger *gecho.Logger,
	recentService *services.RecentService,
) *RecentRoutesManager {
	return &RecentRoutesManager{
		logger:        logger,
		recentService: recentService,
	}
}

func (rrm *RecentRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/recent", rrm.GetRecentlyViewed)
	r.Post("/recent/{id}", rrm.RecordView)
}
