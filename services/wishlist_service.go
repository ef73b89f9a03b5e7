package services

import (
	"context"
	"fmt"
	"sync"

	"giftbasket_server/lib"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// wishlistMirror is the slice of CacheService the wishlist touches.
type wishlistMirror interface {
	IsWishlisted(owner string, productID int64) (bool, error)
	AddWishlisted(owner string, productID int64) error
	RemoveWishlisted(owner string, productID int64) error
	ReplaceWishlist(owner string, ids []int64) error
	WishlistMembers(owner string) ([]int64, error)
}

// wishlistUpstream is the slice of CatalogService the wishlist touches.
type wishlistUpstream interface {
	FetchWishlist(ctx context.Context, token string) ([]int64, error)
	WishlistAdd(ctx context.Context, token string, productID int64) error
	WishlistRemove(ctx context.Context, token string, productID int64) error
}

// WishlistService mirrors the upstream wishlist with optimistic toggles.
// Per (user, product) the state machine is NotWishlisted → Pending →
// {Wishlisted | NotWishlisted on failure}; Pending is exclusive, so two
// rapid toggles for the same product never produce concurrent upstream
// requests. Toggles for different products may run concurrently.
type WishlistService struct {
	logger         *gecho.Logger
	cacheService   wishlistMirror
	catalogService wishlistUpstream

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewWishlistService(logger *gecho.Logger, cacheService *CacheService, catalogService *CatalogService) *WishlistService {
	return &WishlistService{
		logger:         logger,
		cacheService:   cacheService,
		catalogService: catalogService,
		inflight:       make(map[string]struct{}),
	}
}

func toggleKey(userID uuid.UUID, productID int64) string {
	return fmt.Sprintf("%s:%d", userID, productID)
}

// Hydrate replaces the local mirror with the authoritative upstream set.
func (ws *WishlistService) Hydrate(ctx context.Context, userID uuid.UUID, token string) (*structs.WishlistView, error) {
	if token == "" {
		return nil, lib.ErrAuthRequired
	}

	ids, err := ws.catalogService.FetchWishlist(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := ws.cacheService.ReplaceWishlist(userID.String(), ids); err != nil {
		ws.logger.Warn("Failed to refresh wishlist mirror", gecho.Field("user_id", userID), gecho.Field("error", err))
	}

	return &structs.WishlistView{ProductIDs: ids, Count: len(ids)}, nil
}

// IsWishlisted answers membership from the local mirror in O(1); it never
// triggers a network call.
func (ws *WishlistService) IsWishlisted(userID uuid.UUID, productID int64) (bool, error) {
	return ws.cacheService.IsWishlisted(userID.String(), productID)
}

// Membership returns the mirrored set without touching the upstream API.
func (ws *WishlistService) Membership(userID uuid.UUID) (*structs.WishlistView, error) {
	ids, err := ws.cacheService.WishlistMembers(userID.String())
	if err != nil {
		return nil, err
	}
	return &structs.WishlistView{ProductIDs: ids, Count: len(ids)}, nil
}

// State reports the current toggle state for a product.
func (ws *WishlistService) State(userID uuid.UUID, productID int64) (structs.ToggleState, error) {
	ws.mu.Lock()
	_, pending := ws.inflight[toggleKey(userID, productID)]
	ws.mu.Unlock()

	if pending {
		return structs.TogglePending, nil
	}

	member, err := ws.cacheService.IsWishlisted(userID.String(), productID)
	if err != nil {
		return structs.ToggleNotWishlisted, err
	}
	if member {
		return structs.ToggleWishlisted, nil
	}
	return structs.ToggleNotWishlisted, nil
}

// Toggle flips wishlist membership optimistically and reconciles with the
// upstream response, reverting on failure. An unauthenticated caller is
// rejected before any network side effect; a toggle already Pending for
// the same product is rejected rather than fired concurrently.
func (ws *WishlistService) Toggle(ctx context.Context, userID uuid.UUID, token string, productID int64) (*structs.ToggleResult, error) {
	if token == "" || userID == uuid.Nil {
		return nil, lib.ErrAuthRequired
	}

	key := toggleKey(userID, productID)

	ws.mu.Lock()
	if _, pending := ws.inflight[key]; pending {
		ws.mu.Unlock()
		return nil, lib.ErrToggleInFlight
	}
	ws.inflight[key] = struct{}{}
	ws.mu.Unlock()

	defer func() {
		ws.mu.Lock()
		delete(ws.inflight, key)
		ws.mu.Unlock()
	}()

	owner := userID.String()
	wasWishlisted, err := ws.cacheService.IsWishlisted(owner, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to read wishlist mirror: %w", err)
	}

	// Optimistic flip; reverted below if the upstream call fails.
	if wasWishlisted {
		err = ws.cacheService.RemoveWishlisted(owner, productID)
	} else {
		err = ws.cacheService.AddWishlisted(owner, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update wishlist mirror: %w", err)
	}

	if wasWishlisted {
		err = ws.catalogService.WishlistRemove(ctx, token, productID)
	} else {
		err = ws.catalogService.WishlistAdd(ctx, token, productID)
	}

	if err != nil {
		ws.revert(owner, productID, wasWishlisted)
		ws.logger.Warn("Wishlist toggle failed, reverted",
			gecho.Field("user_id", userID),
			gecho.Field("product_id", productID),
			gecho.Field("error", err),
		)
		return nil, err
	}

	// Reconcile with the authoritative set; a failed re-fetch keeps the
	// optimistic value, which the upstream call just confirmed.
	if ids, err := ws.catalogService.FetchWishlist(ctx, token); err == nil {
		if err := ws.cacheService.ReplaceWishlist(owner, ids); err != nil {
			ws.logger.Warn("Failed to refresh wishlist mirror after toggle", gecho.Field("error", err))
		}
	}

	state := structs.ToggleWishlisted
	if wasWishlisted {
		state = structs.ToggleNotWishlisted
	}

	return &structs.ToggleResult{
		ProductID:  productID,
		State:      state,
		Wishlisted: !wasWishlisted,
	}, nil
}

func (ws *WishlistService) revert(owner string, productID int64, wasWishlisted bool) {
	var err error
	if wasWishlisted {
		err = ws.cacheService.AddWishlisted(owner, productID)
	} else {
		err = ws.cacheService.RemoveWishlisted(owner, productID)
	}
	if err != nil {
		ws.logger.Error("Failed to revert wishlist mirror", gecho.Field("product_id", productID), gecho.Field("error", err))
	}
}
