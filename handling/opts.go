package handling

import (
	"net/http"
	"strconv"
	"strings"

	"giftbasket_server/services"
	"giftbasket_server/structs"
)

// ParseProductListFilters parses HTTP query parameters into ProductListFilters
func ParseProductListFilters(r *http.Request) (*services.ProductListFilters, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &services.ProductListFilters{}, nil
	}

	filters := &services.ProductListFilters{}
	var err error
	var valInt int
	var valBool bool

	if ids := query.Get("ids"); ids != "" {
		parts := splitAndTrim(ids)
		filters.IDs = make([]int64, 0, len(parts))
		for _, part := range parts {
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, err
			}
			filters.IDs = append(filters.IDs, id)
		}
	}

	if category := query.Get("category"); category != "" {
		filters.Category = category
	}

	if occasion := query.Get("occasion"); occasion != "" {
		filters.Occasion = occasion
	}

	if trending := query.Get("trending"); trending != "" {
		if valBool, err = strconv.ParseBool(trending); err != nil {
			return nil, err
		}
		filters.Trending = &valBool
	}

	if limit := query.Get("limit"); limit != "" {
		if valInt, err = strconv.Atoi(limit); err != nil {
			return nil, err
		}
		filters.Limit = valInt
	}

	return filters, nil
}

// ParseVariantSelection reads an optional size_id or weight query parameter.
// An absent pair means no selection; size_id wins when both are present.
func ParseVariantSelection(r *http.Request) (structs.VariantSelection, error) {
	query := r.URL.Query()

	if sizeID := query.Get("size_id"); sizeID != "" {
		id, err := strconv.ParseInt(sizeID, 10, 64)
		if err != nil {
			return structs.NoSelection(), err
		}
		return structs.SelectSize(id), nil
	}

	if weight := query.Get("weight"); weight != "" {
		return structs.SelectWeight(weight), nil
	}

	return structs.NoSelection(), nil
}

// splitAndTrim splits a comma-separated string and trims whitespace efficiently
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	// Trim in place to avoid extra allocations
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
