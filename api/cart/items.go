package cart

import (
	"net/http"

	"giftbasket_server/api/middleware"
	"giftbasket_server/handling"
	"giftbasket_server/lib"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetCart handles GET /cart. Loading the cart re-checks every line
// against live stock so quantities never exceed what is purchasable.
func (crm *CartRoutesManager) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := crm.requireCartID(w, r)
	if !ok {
		return
	}

	view, err := crm.cartService.ReclampCart(r.Context(), cartID)
	if err != nil {
		crm.logger.Error("Failed to load cart", gecho.Field("cart_id", cartID), gecho.Field("error", err))
		handling.RespondServiceError(w, crm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(view),
		gecho.Send(),
	)
}

// AddItem handles POST /cart/items
func (crm *CartRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := crm.requireCartID(w, r)
	if !ok {
		return
	}

	req, err := lib.ExtractAndValidateBody[structs.AddCartItemRequest](r)
	if err != nil {
		crm.logger.Warn("Invalid add-to-cart request", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidRequest"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	line, err := crm.cartService.AddItem(r.Context(), cartID, req.ProductID, req.Selection(), req.Quantity)
	if err != nil {
		handling.RespondServiceError(w, crm.logger, err)
		return
	}

	view, err := crm.cartService.GetCart(r.Context(), cartID)
	if err != nil {
		handling.RespondServiceError(w, crm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"line": line,
			"cart": view,
		}),
		gecho.Send(),
	)
}

// UpdateItem handles PATCH /cart/items/{lineId}. Quantity zero removes
// the line; anything else is clamped to the stored stock ceiling.
func (crm *CartRoutesManager) UpdateItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := crm.requireCartID(w, r)
	if !ok {
		return
	}

	lineID, ok := crm.parseLineID(w, r)
	if !ok {
		return
	}

	req, err := lib.ExtractAndValidateBody[structs.UpdateCartItemRequest](r)
	if err != nil {
		crm.logger.Warn("Invalid cart update request", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidRequest"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	if _, err := crm.cartService.UpdateQuantity(r.Context(), cartID, lineID, req.Quantity); err != nil {
		handling.RespondServiceError(w, crm.logger, err)
		return
	}

	view, err := crm.cartService.GetCart(r.Context(), cartID)
	if err != nil {
		handling.RespondServiceError(w, crm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(view),
		gecho.Send(),
	)
}

// RemoveItem handles DELETE /cart/items/{lineId}
func (crm *CartRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := crm.requireCartID(w, r)
	if !ok {
		return
	}

	lineID, ok := crm.parseLineID(w, r)
	if !ok {
		return
	}

	if err := crm.cartService.RemoveLine(r.Context(), cartID, lineID); err != nil {
		handling.RespondServiceError(w, crm.logger, err)
		return
	}

	view, err := crm.cartService.GetCart(r.Context(), cartID)
	if err != nil {
		handling.RespondServiceError(w, crm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(view),
		gecho.Send(),
	)
}

// ClearCart handles DELETE /cart
func (crm *CartRoutesManager) ClearCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := crm.requireCartID(w, r)
	if !ok {
		return
	}

	if err := crm.cartService.Clear(r.Context(), cartID); err != nil {
		handling.RespondServiceError(w, crm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.cart.cleared"),
		gecho.Send(),
	)
}

func (crm *CartRoutesManager) requireCartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	cartID, ok := middleware.GetCartIDFromContext(r.Context())
	if !ok {
		crm.logger.Error("Cart request without session cart id")
		gecho.InternalServerError(w,
			gecho.WithMessage("error.cart.noSession"),
			gecho.Send(),
		)
		return uuid.Nil, false
	}
	return cartID, true
}

func (crm *CartRoutesManager) parseLineID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	lineID, err := uuid.Parse(chi.URLParam(r, "lineId"))
	if err != nil || lineID == uuid.Nil {
		crm.logger.Warn("Invalid cart line id", gecho.Field("line_id", chi.URLParam(r, "lineId")))
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidLineId"),
			gecho.Send(),
		)
		return uuid.Nil, false
	}
	return lineID, true
}
