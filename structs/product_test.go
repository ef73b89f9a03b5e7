package structs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListDecoding(t *testing.T) {
	var native StringList
	require.NoError(t, json.Unmarshal([]byte(`["a.jpg","b.jpg"]`), &native))

	var stringified StringList
	require.NoError(t, json.Unmarshal([]byte(`"[\"a.jpg\",\"b.jpg\"]"`), &stringified))

	// Both wire encodings decode to the same value.
	assert.Equal(t, native, stringified)
	assert.Equal(t, StringList{"a.jpg", "b.jpg"}, native)
}

func TestStringListMalformed(t *testing.T) {
	// Malformed fields decode to empty, never fail the record.
	for _, raw := range []string{`"not an array"`, `42`, `"{broken"`, `null`} {
		var l StringList
		require.NoError(t, json.Unmarshal([]byte(raw), &l), "input %s", raw)
		assert.Empty(t, l, "input %s", raw)
	}
}

func TestWeightOptionListDecoding(t *testing.T) {
	raw := `"[{\"weight\":\"250g\",\"price\":60,\"stock\":10}]"`

	var l WeightOptionList
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	require.Len(t, l, 1)
	assert.Equal(t, "250g", l[0].Weight)
	assert.Equal(t, MoneyFromDecimal(60), l[0].Price)
	require.NotNil(t, l[0].Stock)
	assert.Equal(t, 10, *l[0].Stock)
}

func TestProductDecodeSurvivesMalformedFields(t *testing.T) {
	raw := `{
		"id": 9,
		"name": "Sampler",
		"images": 12345,
		"weight_options": "oops",
		"instagram_embeds": [{"url":"https://instagram.com/p/x","enabled":true}],
		"stock": 2
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, int64(9), p.ID)
	assert.Empty(t, p.Images)
	assert.Empty(t, p.WeightOptions)
	require.Len(t, p.InstagramEmbeds, 1)
}

func TestMoneyDecoding(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`19.99`), &m))
	assert.Equal(t, int64(1999), m.Cents())

	require.NoError(t, json.Unmarshal([]byte(`"8.50"`), &m))
	assert.Equal(t, int64(850), m.Cents())

	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Equal(t, int64(0), m.Cents())

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
	assert.Error(t, json.Unmarshal([]byte(`true`), &m))
}

func TestMoneyRendering(t *testing.T) {
	assert.Equal(t, "19.99", MoneyFromDecimal(19.99).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-3.50", Money(-350).String())

	out, err := json.Marshal(MoneyFromDecimal(100))
	require.NoError(t, err)
	assert.Equal(t, "100.00", string(out))
}

func TestMoneyMul(t *testing.T) {
	assert.Equal(t, Money(600), Money(200).Mul(3))
}

func TestSelectionConstructors(t *testing.T) {
	assert.Equal(t, SelectionNone, NoSelection().Kind)

	sel := SelectSize(4)
	assert.Equal(t, SelectionSize, sel.Kind)
	assert.Equal(t, int64(4), sel.SizeID)

	sel = SelectWeight("1kg")
	assert.Equal(t, SelectionWeight, sel.Kind)
	assert.Equal(t, "1kg", sel.Weight)
}
