package api

import (
	"giftbasket_server/api/cart"
	"giftbasket_server/api/chat"
	"giftbasket_server/api/debug"
	"giftbasket_server/api/health"
	"giftbasket_server/api/middleware"
	"giftbasket_server/api/products"
	"giftbasket_server/api/recent"
	"giftbasket_server/api/reviews"
	"giftbasket_server/api/wishlist"
	"giftbasket_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes  *products.ProductRoutesManager
	cartRoutes     *cart.CartRoutesManager
	wishlistRoutes *wishlist.WishlistRoutesManager
	recentRoutes   *recent.RecentRoutesManager
	reviewRoutes   *reviews.ReviewRoutesManager
	chatRoutes     *chat.ChatRoutesManager
	healthRoutes   *health.HealthRoutesManager
	debugRoutes    *debug.DebugRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	sm *services.ServiceManager,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		productRoutes:  products.NewProductRoutesManager(logger, sm.CatalogService, sm.RecentService),
		cartRoutes:     cart.NewCartRoutesManager(logger, sm.CartService),
		wishlistRoutes: wishlist.NewWishlistRoutesManager(logger, sm.WishlistService, mw),
		recentRoutes:   recent.NewRecentRoutesManager(logger, sm.RecentService),
		reviewRoutes:   reviews.NewReviewRoutesManager(logger, sm.CatalogService, mw),
		chatRoutes:     chat.NewChatRoutesManager(logger, sm.ChatService, sm.ContactService),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
		debugRoutes:    debug.NewDebugRoutesManager(sm.CacheService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.cartRoutes.RegisterRoutes(r)
	rm.wishlistRoutes.RegisterRoutes(r)
	rm.recentRoutes.RegisterRoutes(r)
	rm.reviewRoutes.RegisterRoutes(r)
	rm.chatRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
