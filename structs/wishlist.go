package structs

// ToggleState is the per-product wishlist state machine. Pending is
// transient and exclusive per product id; a toggle request for a product
// that is already Pending is rejected rather than dispatched concurrently.
type ToggleState string

const (
	ToggleNotWishlisted ToggleState = "not_wishlisted"
	TogglePending       ToggleState = "pending"
	ToggleWishlisted    ToggleState = "wishlisted"
)

// WishlistView is the client-facing wishlist snapshot.
type WishlistView struct {
	ProductIDs []int64 `json:"product_ids"`
	Count      int     `json:"count"`
}

// ToggleResult reports the outcome of a wishlist toggle.
type ToggleResult struct {
	ProductID  int64       `json:"product_id"`
	State      ToggleState `json:"state"`
	Wishlisted bool        `json:"wishlisted"`
}
