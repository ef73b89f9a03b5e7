package middleware

import (
	"context"
	"net/http"
	"time"

	"giftbasket_server/lib"

	"github.com/google/uuid"
)

const CartContextKey contextKey = "cart_id"

// cartCookieLifetime keeps guest carts around between visits.
const cartCookieLifetime = 30 * 24 * time.Hour

// CartSessionMiddleware guarantees every request carries a cart id.
// A missing or malformed cookie gets a fresh id minted on the spot, so
// handlers never have to deal with the bootstrap case themselves.
func (mw *Middleware) CartSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cartID uuid.UUID

		if raw, err := lib.GetCookieValue(lib.CartCookieName, r); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				cartID = parsed
			}
		}

		if cartID == uuid.Nil {
			cartID = uuid.New()
			lib.SetCookie(lib.CartCookieName, cartID.String(), time.Now().Add(cartCookieLifetime), w)
		}

		ctx := context.WithValue(r.Context(), CartContextKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCartIDFromContext returns the cart id assigned by CartSessionMiddleware.
func GetCartIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	cartID, ok := ctx.Value(CartContextKey).(uuid.UUID)
	return cartID, ok && cartID != uuid.Nil
}

// ViewerIdentity picks the identity that owns browsing state such as
// the recently-viewed list: the logged-in user when present, the
// anonymous cart id otherwise.
func ViewerIdentity(ctx context.Context) (string, bool) {
	if claims, ok := GetClaimsFromContext(ctx); ok {
		return "user:" + claims.Sub.String(), true
	}
	if cartID, ok := GetCartIDFromContext(ctx); ok {
		return "cart:" + cartID.String(), true
	}
	return "", false
}
