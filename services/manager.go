package services

import (
	"giftbasket_server/database"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CacheService    *CacheService
	CatalogService  *CatalogService
	CartService     *CartService
	WishlistService *WishlistService
	RecentService   *RecentService
	ChatService     *ChatService
	ContactService  *ContactService
	HealthService   *HealthService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	catalogService := NewCatalogService(logger, cfg, cacheService)
	cartService := NewCartService(logger, db, catalogService)
	wishlistService := NewWishlistService(logger, cacheService, catalogService)
	recentService := NewRecentService(logger, cacheService, catalogService)
	chatService := NewChatService(logger, cfg, catalogService)
	contactService := NewContactService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)

	return &ServiceManager{
		CacheService:    cacheService,
		CatalogService:  catalogService,
		CartService:     cartService,
		WishlistService: wishlistService,
		RecentService:   recentService,
		ChatService:     chatService,
		ContactService:  contactService,
		HealthService:   healthService,
	}
}
