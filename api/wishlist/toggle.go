package wishlist

import (
	"net/http"
	"strconv"

	"giftbasket_server/api/middleware"
	"giftbasket_server/handling"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetWishlist handles GET /wishlist from the local mirror
func (wrm *WishlistRoutesManager) GetWishlist(w http.ResponseWriter, r *http.Request) {
	claims, _, ok := wrm.identity(w, r)
	if !ok {
		return
	}

	view, err := wrm.wishlistService.Membership(claims.Sub)
	if err != nil {
		wrm.logger.Error("Failed to read wishlist mirror", gecho.Field("error", err))
		handling.RespondServiceError(w, wrm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(view),
		gecho.Send(),
	)
}

// SyncWishlist handles POST /wishlist/sync, replacing the local mirror
// with the account's server-side wishlist
func (wrm *WishlistRoutesManager) SyncWishlist(w http.ResponseWriter, r *http.Request) {
	claims, token, ok := wrm.identity(w, r)
	if !ok {
		return
	}

	view, err := wrm.wishlistService.Hydrate(r.Context(), claims.Sub, token)
	if err != nil {
		wrm.logger.Error("Failed to hydrate wishlist", gecho.Field("user_id", claims.Sub), gecho.Field("error", err))
		handling.RespondServiceError(w, wrm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(view),
		gecho.Send(),
	)
}

// ToggleProduct handles POST /wishlist/toggle/{id}
func (wrm *WishlistRoutesManager) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	claims, token, ok := wrm.identity(w, r)
	if !ok {
		return
	}

	idStr := chi.URLParam(r, "id")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		wrm.logger.Warn("Invalid product ID format", gecho.Field("id", idStr))
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.invalidProductId"),
			gecho.Send(),
		)
		return
	}

	result, err := wrm.wishlistService.Toggle(r.Context(), claims.Sub, token, productID)
	if err != nil {
		handling.RespondServiceError(w, wrm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (wrm *WishlistRoutesManager) identity(w http.ResponseWriter, r *http.Request) (*structs.AuthClaims, string, bool) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok || claims.Sub == uuid.Nil {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.required"), gecho.Send())
		return nil, "", false
	}

	token, _ := middleware.GetTokenFromContext(r.Context())
	return claims, token, true
}
