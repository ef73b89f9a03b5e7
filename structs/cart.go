package structs

import "github.com/google/uuid"

// AddCartItemRequest is the body of POST /cart/items. Selection fields are
// optional; which one is required depends on the product's pricing mode.
type AddCartItemRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	SizeID    int64  `json:"size_id,omitempty" validate:"omitempty,gt=0"`
	Weight    string `json:"weight,omitempty" validate:"omitempty,max=50"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// UpdateCartItemRequest is the body of PATCH /cart/items/{lineId}.
// A quantity of zero removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// Selection converts the request's variant fields to a VariantSelection.
func (r *AddCartItemRequest) Selection() VariantSelection {
	switch {
	case r.SizeID > 0:
		return SelectSize(r.SizeID)
	case r.Weight != "":
		return SelectWeight(r.Weight)
	default:
		return NoSelection()
	}
}

// CartLineView is one cart line as returned to the client.
type CartLineView struct {
	LineID       uuid.UUID `json:"line_id"`
	ProductID    int64     `json:"product_id"`
	VariantLabel string    `json:"variant_label,omitempty"`
	UnitPrice    Money     `json:"unit_price"`
	Quantity     int       `json:"quantity"`
	StockCeiling int       `json:"stock_ceiling"`
	LineTotal    Money     `json:"line_total"`
}

// CartView is the full cart as returned to the client.
type CartView struct {
	CartID    uuid.UUID      `json:"cart_id"`
	Lines     []CartLineView `json:"lines"`
	ItemCount int            `json:"item_count"`
	Total     Money          `json:"total"`
}
