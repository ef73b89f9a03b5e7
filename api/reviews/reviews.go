package reviews

import (
	"net/http"
	"strconv"

	"giftbasket_server/api/middleware"
	"giftbasket_server/handling"
	"giftbasket_server/lib"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchReviews handles GET /products/{id}/reviews
func (rrm *ReviewRoutesManager) FetchReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := rrm.parseProductID(w, r)
	if !ok {
		return
	}

	summary, err := rrm.catalogService.FetchReviews(r.Context(), productID)
	if err != nil {
		rrm.logger.Error("Failed to fetch reviews", gecho.Field("product_id", productID), gecho.Field("error", err))
		handling.RespondServiceError(w, rrm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(summary),
		gecho.Send(),
	)
}

// CheckEligibility handles GET /products/{id}/reviews/eligibility
func (rrm *ReviewRoutesManager) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	productID, ok := rrm.parseProductID(w, r)
	if !ok {
		return
	}

	token, _ := middleware.GetTokenFromContext(r.Context())

	eligibility, err := rrm.catalogService.FetchReviewEligibility(r.Context(), token, productID)
	if err != nil {
		rrm.logger.Error("Failed to check review eligibility", gecho.Field("product_id", productID), gecho.Field("error", err))
		handling.RespondServiceError(w, rrm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(eligibility),
		gecho.Send(),
	)
}

// SubmitReview handles POST /reviews
func (rrm *ReviewRoutesManager) SubmitReview(w http.ResponseWriter, r *http.Request) {
	req, err := lib.ExtractAndValidateBody[structs.AddReviewRequest](r)
	if err != nil {
		rrm.logger.Warn("Invalid review request", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.reviews.invalidRequest"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	req.Comment = lib.SanitizeString(req.Comment, true, false)

	token, _ := middleware.GetTokenFromContext(r.Context())

	review, err := rrm.catalogService.SubmitReview(r.Context(), token, req)
	if err != nil {
		handling.RespondServiceError(w, rrm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(review),
		gecho.Send(),
	)
}

func (rrm *ReviewRoutesManager) parseProductID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		rrm.logger.Warn("Invalid product ID format", gecho.Field("id", idStr))
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.invalidProductId"),
			gecho.Send(),
		)
		return 0, false
	}

	return id, true
}
