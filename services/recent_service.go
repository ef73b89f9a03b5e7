package services

import (
	"context"
	"sync"

	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
)

// recentCapacity bounds the recently-viewed list.
const recentCapacity = 10

// RecentService tracks recently-viewed products per owner: most recent
// first, deduplicated, capacity-bounded, persisted as one JSON array that
// is replaced whole on every write.
type RecentService struct {
	logger         *gecho.Logger
	cacheService   *CacheService
	catalogService *CatalogService

	// Serializes read-modify-write cycles so concurrent views cannot
	// interleave into a partially applied list.
	mu sync.Mutex
}

func NewRecentService(logger *gecho.Logger, cacheService *CacheService, catalogService *CatalogService) *RecentService {
	return &RecentService{
		logger:         logger,
		cacheService:   cacheService,
		catalogService: catalogService,
	}
}

// RecordView moves the product to the front of the owner's list, dropping
// any earlier occurrence and truncating to capacity. Invalid ids are
// ignored silently.
func (rs *RecentService) RecordView(owner string, productID int64) error {
	if productID <= 0 {
		return nil
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	ids, err := rs.cacheService.GetRecentlyViewed(owner)
	if err != nil {
		return err
	}

	return rs.cacheService.SetRecentlyViewed(owner, pushRecent(ids, productID))
}

// pushRecent prepends the product id, drops any earlier occurrence and
// truncates to capacity.
func pushRecent(ids []int64, productID int64) []int64 {
	updated := make([]int64, 0, min(len(ids)+1, recentCapacity))
	updated = append(updated, productID)
	for _, id := range ids {
		if id == productID {
			continue
		}
		updated = append(updated, id)
		if len(updated) == recentCapacity {
			break
		}
	}
	return updated
}

// List returns the owner's recently-viewed product ids, most recent first.
func (rs *RecentService) List(owner string) ([]int64, error) {
	ids, err := rs.cacheService.GetRecentlyViewed(owner)
	if err != nil {
		return nil, err
	}
	if len(ids) > recentCapacity {
		ids = ids[:recentCapacity]
	}
	return ids, nil
}

// RecentProducts hydrates the owner's recently-viewed ids into full
// product records, preserving recency order and skipping ids the catalog
// no longer knows.
func (rs *RecentService) RecentProducts(ctx context.Context, owner string) []structs.Product {
	ids, err := rs.List(owner)
	if err != nil || len(ids) == 0 {
		return nil
	}

	products := make([]structs.Product, 0, len(ids))
	for _, id := range ids {
		product, err := rs.catalogService.FetchProduct(ctx, id)
		if err != nil {
			rs.logger.Debug("Skipping stale recently-viewed id", gecho.Field("id", id), gecho.Field("error", err))
			continue
		}
		products = append(products, *product)
	}
	return products
}
