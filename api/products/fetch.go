package products

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"giftbasket_server/api/middleware"
	"giftbasket_server/handling"
	"giftbasket_server/lib"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// detailSlotKey ties the product detail slot to one viewer, so a rapid
// series of views only ever resolves that viewer's most recently
// requested product. Other shoppers' fetches are untouched.
func detailSlotKey(owner string) string {
	return "product:detail:" + owner
}

// FetchAllProducts handles GET /products with category, occasion and trending filters
func (prm *ProductRoutesManager) FetchAllProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filters, err := handling.ParseProductListFilters(r)
	if err != nil {
		prm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	products, err := prm.catalogService.FetchProducts(ctx, *filters)
	if err != nil {
		prm.logger.Error("Failed to fetch products", gecho.Field("error", err))
		handling.RespondServiceError(w, prm.logger, err)
		return
	}

	views := make([]map[string]any, 0, len(products))
	for i := range products {
		views = append(views, resolvedProductPayload(&products[i], structs.NoSelection()))
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": views,
			"count":    len(views),
		}),
		gecho.Send(),
	)
}

// FetchProductByID handles GET /products/{id} with an optional size_id
// or weight selection resolved into price and stock
func (prm *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := prm.parseProductID(w, r)
	if !ok {
		return
	}

	sel, err := handling.ParseVariantSelection(r)
	if err != nil {
		prm.logger.Warn("Invalid variant selection", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.invalidSelection"),
			gecho.Send(),
		)
		return
	}

	ctx := r.Context()
	if owner, ok := middleware.ViewerIdentity(ctx); ok {
		var release func()
		ctx, release = prm.catalogService.Slots().Begin(ctx, detailSlotKey(owner))
		defer release()
	}

	product, err := prm.catalogService.FetchProduct(ctx, id)
	if err != nil {
		// A newer detail request superseded this one; the response
		// would be stale, so drop it without writing.
		if errors.Is(err, context.Canceled) {
			prm.logger.Debug("Product detail fetch superseded", gecho.Field("id", id))
			return
		}
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w,
				gecho.WithMessage("error.products.notFound"),
				gecho.Send(),
			)
			return
		}

		prm.logger.Error("Failed to fetch product by ID", gecho.Field("id", id), gecho.Field("error", err))
		handling.RespondServiceError(w, prm.logger, err)
		return
	}

	// Viewing a detail page feeds the recently-viewed list, best effort.
	if owner, ok := middleware.ViewerIdentity(r.Context()); ok {
		if err := prm.recentService.RecordView(owner, id); err != nil {
			prm.logger.Warn("Failed to record product view", gecho.Field("error", err))
		}
	}

	gecho.Success(w,
		gecho.WithData(resolvedProductPayload(product, sel)),
		gecho.Send(),
	)
}

// FetchRecommendations handles GET /products/{id}/recommendations
func (prm *ProductRoutesManager) FetchRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := prm.parseProductID(w, r)
	if !ok {
		return
	}

	limit := 4
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if val, err := strconv.Atoi(limitStr); err == nil && val > 0 {
			limit = val
		}
	}

	products, err := prm.catalogService.FetchRecommendations(ctx, id, limit)
	if err != nil {
		prm.logger.Error("Failed to fetch recommendations", gecho.Field("id", id), gecho.Field("error", err))
		handling.RespondServiceError(w, prm.logger, err)
		return
	}

	views := make([]map[string]any, 0, len(products))
	for i := range products {
		views = append(views, resolvedProductPayload(&products[i], structs.NoSelection()))
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": views,
			"count":    len(views),
		}),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) parseProductID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		prm.logger.Warn("Invalid product ID format", gecho.Field("id", idStr))
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.invalidProductId"),
			gecho.Send(),
		)
		return 0, false
	}

	return id, true
}
