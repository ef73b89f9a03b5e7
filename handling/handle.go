package handling

import (
	"errors"
	"net/http"

	"giftbasket_server/lib"

	"github.com/MonkyMars/gecho"
)

// RespondServiceError maps an engine error onto the HTTP response it
// deserves. User-visible storefront conditions are 4xx and carry a
// message key; everything unrecognized stays a 500.
func RespondServiceError(w http.ResponseWriter, logger *gecho.Logger, err error) {
	switch {
	case errors.Is(err, lib.ErrOutOfStock):
		gecho.BadRequest(w, gecho.WithMessage("error.cart.outOfStock"), gecho.Send())
	case errors.Is(err, lib.ErrNoVariantSelected):
		gecho.BadRequest(w, gecho.WithMessage("error.cart.noVariantSelected"), gecho.Send())
	case errors.Is(err, lib.ErrPriceUnavailable):
		gecho.BadRequest(w, gecho.WithMessage("error.products.priceUnavailable"), gecho.Send())
	case errors.Is(err, lib.ErrToggleInFlight):
		gecho.Conflict(w, gecho.WithMessage("error.wishlist.toggleInFlight"), gecho.Send())
	case errors.Is(err, lib.ErrAuthRequired):
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.required"), gecho.Send())
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.Send())
	case errors.Is(err, lib.ErrServiceBusy):
		gecho.ServiceUnavailable(w, gecho.WithMessage("error.serviceTemporarilyUnavailable"), gecho.Send())
	default:
		logger.Error("Unhandled service error", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithData(err.Error()), gecho.Send())
	}
}
