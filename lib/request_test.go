package lib

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemBody struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	Weight    string `json:"weight,omitempty" validate:"omitempty,max=50"`
}

func TestExtractAndValidateBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/cart/items", strings.NewReader(`{"product_id":3,"quantity":2}`))

	body, err := ExtractAndValidateBody[addItemBody](r)
	require.NoError(t, err)
	assert.Equal(t, int64(3), body.ProductID)
	assert.Equal(t, 2, body.Quantity)
}

func TestExtractAndValidateBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/cart/items", strings.NewReader(`{"product_id":3,"quantity":2,"bogus":true}`))

	_, err := ExtractAndValidateBody[addItemBody](r)
	assert.Error(t, err)
}

func TestExtractAndValidateBodyFieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/cart/items", strings.NewReader(`{"product_id":0,"quantity":0}`))

	_, err := ExtractAndValidateBody[addItemBody](r)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Errors, 2)
	assert.Equal(t, "productid", ve.Errors[0].Field)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  ", true, false))
	assert.Equal(t, "ab", SanitizeString("a\x00b\x1f", false, false))
	assert.Equal(t, "a\tb", SanitizeString("a\tb", false, true))
}
