package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"giftbasket_server/lib"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
)

// CatalogService is the HTTP/JSON client for the external catalog/order
// API. Every product record passes through the structs decode boundary on
// the way in, so heterogeneously encoded fields are canonical by the time
// they leave this service.
type CatalogService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	cacheService *CacheService
	httpClient   *http.Client
	slots        *FetchCoordinator
}

func NewCatalogService(logger *gecho.Logger, cfg *structs.Config, cacheService *CacheService) *CatalogService {
	return &CatalogService{
		logger:       logger,
		cfg:          cfg,
		cacheService: cacheService,
		httpClient: &http.Client{
			Timeout: cfg.Upstream.RequestTimeout,
		},
		slots: NewFetchCoordinator(),
	}
}

// Slots exposes the per-entity fetch coordinator so handlers can tie a
// fetch to a viewed entity (last-requested-wins).
func (cs *CatalogService) Slots() *FetchCoordinator {
	return cs.slots
}

// ProductListFilters mirrors the upstream list query surface. Trending is
// tri-state: nil leaves the parameter off entirely.
type ProductListFilters struct {
	IDs      []int64
	Category string
	Occasion string
	Trending *bool
	Limit    int
}

// FetchProduct fetches one product record, serving from the cache when it
// can.
func (cs *CatalogService) FetchProduct(ctx context.Context, id int64) (*structs.Product, error) {
	if cached, err := cs.cacheService.GetProduct(id); err == nil && cached != nil {
		return cached, nil
	}

	var product structs.Product
	if err := cs.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, "", nil, &product); err != nil {
		return nil, err
	}

	if err := cs.cacheService.SetProduct(&product); err != nil {
		cs.logger.Warn("Failed to cache product record", gecho.Field("id", id), gecho.Field("error", err))
	}

	return &product, nil
}

// FetchProducts fetches a filtered product list.
func (cs *CatalogService) FetchProducts(ctx context.Context, filters ProductListFilters) ([]structs.Product, error) {
	query := url.Values{}
	if len(filters.IDs) > 0 {
		parts := make([]string, len(filters.IDs))
		for i, id := range filters.IDs {
			parts[i] = strconv.FormatInt(id, 10)
		}
		query.Set("ids", strings.Join(parts, ","))
	}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.Occasion != "" {
		query.Set("occasion", filters.Occasion)
	}
	if filters.Trending != nil {
		query.Set("trending", strconv.FormatBool(*filters.Trending))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var products []structs.Product
	if err := cs.doJSON(ctx, http.MethodGet, "/products", query, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchRecommendations fetches the ranked recommendation list for a
// product.
func (cs *CatalogService) FetchRecommendations(ctx context.Context, id int64, limit int) ([]structs.Product, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var products []structs.Product
	if err := cs.doJSON(ctx, http.MethodGet, fmt.Sprintf("/recommendations/%d", id), query, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchReviews fetches a product's reviews with aggregates.
func (cs *CatalogService) FetchReviews(ctx context.Context, productID int64) (*structs.ReviewSummary, error) {
	var summary structs.ReviewSummary
	if err := cs.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d/reviews", productID), nil, "", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// FetchReviewEligibility asks upstream whether the user may review a
// product. Authenticated.
func (cs *CatalogService) FetchReviewEligibility(ctx context.Context, token string, productID int64) (*structs.ReviewEligibility, error) {
	var eligibility structs.ReviewEligibility
	if err := cs.doJSON(ctx, http.MethodGet, fmt.Sprintf("/reviews/eligibility/%d", productID), nil, token, nil, &eligibility); err != nil {
		return nil, err
	}
	return &eligibility, nil
}

// SubmitReview creates a review upstream. Authenticated.
func (cs *CatalogService) SubmitReview(ctx context.Context, token string, req *structs.AddReviewRequest) (*structs.Review, error) {
	var review structs.Review
	if err := cs.doJSON(ctx, http.MethodPost, "/reviews/add", nil, token, req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

type wishlistPayload struct {
	ProductIDs []int64 `json:"product_ids"`
}

// FetchWishlist fetches the authoritative wishlist membership set.
func (cs *CatalogService) FetchWishlist(ctx context.Context, token string) ([]int64, error) {
	var payload wishlistPayload
	if err := cs.doJSON(ctx, http.MethodGet, "/wishlist", nil, token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.ProductIDs, nil
}

// WishlistAdd adds a product to the upstream wishlist.
func (cs *CatalogService) WishlistAdd(ctx context.Context, token string, productID int64) error {
	body := map[string]int64{"product_id": productID}
	return cs.doJSON(ctx, http.MethodPost, "/wishlist/add", nil, token, body, nil)
}

// WishlistRemove removes a product from the upstream wishlist.
func (cs *CatalogService) WishlistRemove(ctx context.Context, token string, productID int64) error {
	return cs.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/wishlist/remove/%d", productID), nil, token, nil, nil)
}

// Chat forwards a chat message to the assistant collaborator. A 429 or a
// quota/billing-flavored error surfaces as ErrServiceBusy so the caller
// can degrade to the contact channel.
func (cs *CatalogService) Chat(ctx context.Context, req *structs.ChatRequest) (*structs.ChatResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, cs.cfg.Upstream.ChatTimeout)
	defer cancel()

	var resp structs.ChatResponse
	if err := cs.doJSON(ctx, http.MethodPost, "/chat", nil, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type upstreamError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doJSON performs one upstream request and maps the outcome onto the
// engine's error taxonomy.
func (cs *CatalogService) doJSON(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	endpoint := strings.TrimSuffix(cs.cfg.Upstream.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", lib.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: lib.AccessCookieName, Value: token})
	}

	start := time.Now()
	resp, err := cs.httpClient.Do(req)
	if err != nil {
		// Cancellation is the caller's doing, not an upstream failure.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", lib.ErrUpstream, err)
	}
	defer resp.Body.Close()

	cs.logger.Debug("Upstream request",
		gecho.Field("method", method),
		gecho.Field("path", path),
		gecho.Field("status", resp.StatusCode),
		gecho.Field("duration", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		return cs.mapStatusError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: invalid response body: %v", lib.ErrUpstream, err)
	}
	return nil
}

func (cs *CatalogService) mapStatusError(resp *http.Response) error {
	var payload upstreamError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return lib.ErrAuthRequired
	case http.StatusNotFound:
		return lib.ErrNotFound
	case http.StatusTooManyRequests:
		return lib.ErrServiceBusy
	}

	if isQuotaSignal(msg) {
		return lib.ErrServiceBusy
	}

	if msg != "" {
		return fmt.Errorf("%w: %s", lib.ErrUpstream, msg)
	}
	return fmt.Errorf("%w: status %d", lib.ErrUpstream, resp.StatusCode)
}

// isQuotaSignal recognizes quota/billing-flavored error strings that must
// degrade to "service temporarily unavailable".
func isQuotaSignal(msg string) bool {
	if msg == "" {
		return false
	}

	lower := strings.ToLower(msg)
	signals := []string{
		"quota",
		"billing",
		"rate limit",
		"too many requests",
		"insufficient_quota",
		"429",
	}

	for _, signal := range signals {
		if strings.Contains(lower, signal) {
			return true
		}
	}
	return false
}
