package handling

import (
	"net/http/httptest"
	"testing"

	"giftbasket_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductListFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?ids=1,2,3&category=baskets&trending=true&limit=5", nil)

	filters, err := ParseProductListFilters(r)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, filters.IDs)
	assert.Equal(t, "baskets", filters.Category)
	require.NotNil(t, filters.Trending)
	assert.True(t, *filters.Trending)
	assert.Equal(t, 5, filters.Limit)
}

func TestParseProductListFiltersEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)

	filters, err := ParseProductListFilters(r)
	require.NoError(t, err)
	assert.Empty(t, filters.IDs)
	assert.Nil(t, filters.Trending)
}

func TestParseProductListFiltersInvalid(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?ids=1,x", nil)
	_, err := ParseProductListFilters(r)
	assert.Error(t, err)

	r = httptest.NewRequest("GET", "/products?trending=maybe", nil)
	_, err = ParseProductListFilters(r)
	assert.Error(t, err)
}

func TestParseVariantSelection(t *testing.T) {
	r := httptest.NewRequest("GET", "/products/1?size_id=3", nil)
	sel, err := ParseVariantSelection(r)
	require.NoError(t, err)
	assert.Equal(t, structs.SelectSize(3), sel)

	r = httptest.NewRequest("GET", "/products/1?weight=500g", nil)
	sel, err = ParseVariantSelection(r)
	require.NoError(t, err)
	assert.Equal(t, structs.SelectWeight("500g"), sel)

	// size_id wins when both are present.
	r = httptest.NewRequest("GET", "/products/1?size_id=3&weight=500g", nil)
	sel, err = ParseVariantSelection(r)
	require.NoError(t, err)
	assert.Equal(t, structs.SelectSize(3), sel)

	r = httptest.NewRequest("GET", "/products/1", nil)
	sel, err = ParseVariantSelection(r)
	require.NoError(t, err)
	assert.Equal(t, structs.NoSelection(), sel)

	r = httptest.NewRequest("GET", "/products/1?size_id=abc", nil)
	_, err = ParseVariantSelection(r)
	assert.Error(t, err)
}
