package catalog

import (
	"testing"

	"giftbasket_server/lib"
	"giftbasket_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moneyPtr(amount float64) *structs.Money {
	m := structs.MoneyFromDecimal(amount)
	return &m
}

func intPtr(v int) *int {
	return &v
}

func weightedProduct() *structs.Product {
	return &structs.Product{
		ID:   1,
		Name: "Dried Mango",
		WeightOptions: structs.WeightOptionList{
			{Weight: "250g", Price: structs.MoneyFromDecimal(60), Stock: intPtr(10)},
			{Weight: "500g", Price: structs.MoneyFromDecimal(100), OriginalPrice: moneyPtr(150), Stock: intPtr(3)},
		},
		Stock: 99,
	}
}

func sizedProduct() *structs.Product {
	return &structs.Product{
		ID:   2,
		Name: "Gift Basket",
		Sizes: []structs.SizeOption{
			{ID: 11, Label: "Large", Price: structs.MoneyFromDecimal(200), Stock: intPtr(4)},
			{ID: 10, Label: "Small", Price: structs.MoneyFromDecimal(150), OriginalPrice: moneyPtr(150)},
		},
		Stock: 7,
	}
}

func TestResolvePricingMode(t *testing.T) {
	assert.Equal(t, structs.PricingModeWeighted, ResolvePricingMode(weightedProduct()))
	assert.Equal(t, structs.PricingModeSized, ResolvePricingMode(sizedProduct()))

	single := &structs.Product{HasSinglePrice: true, SinglePrice: moneyPtr(25)}
	assert.Equal(t, structs.PricingModeSingle, ResolvePricingMode(single))

	// Weight options dominate even when a single price is also present.
	both := weightedProduct()
	both.HasSinglePrice = true
	both.SinglePrice = moneyPtr(25)
	assert.Equal(t, structs.PricingModeWeighted, ResolvePricingMode(both))

	// A single-price flag without the actual price does not count.
	broken := &structs.Product{HasSinglePrice: true}
	assert.Equal(t, structs.PricingModeNone, ResolvePricingMode(broken))

	assert.Equal(t, structs.PricingModeNone, ResolvePricingMode(&structs.Product{}))
}

func TestResolvePriceWeighted(t *testing.T) {
	p := weightedProduct()

	info, err := ResolvePrice(p, structs.SelectWeight("500g"))
	require.NoError(t, err)
	assert.Equal(t, structs.MoneyFromDecimal(100), info.Selling)
	require.NotNil(t, info.Reference)
	assert.Equal(t, structs.MoneyFromDecimal(150), *info.Reference)
	require.NotNil(t, info.DiscountPct)
	assert.Equal(t, 33, *info.DiscountPct)

	// No selection falls back to the first option.
	info, err = ResolvePrice(p, structs.NoSelection())
	require.NoError(t, err)
	assert.Equal(t, structs.MoneyFromDecimal(60), info.Selling)
	assert.Nil(t, info.Reference)
	assert.Nil(t, info.DiscountPct)

	// A stale label no longer in the catalog cannot resolve.
	_, err = ResolvePrice(p, structs.SelectWeight("750g"))
	assert.ErrorIs(t, err, lib.ErrNoVariantSelected)
}

func TestResolvePriceWeightedIgnoresLowReference(t *testing.T) {
	p := weightedProduct()
	// Reference at or below the selling price is not a real discount.
	p.WeightOptions[0].OriginalPrice = moneyPtr(60)

	info, err := ResolvePrice(p, structs.SelectWeight("250g"))
	require.NoError(t, err)
	assert.Nil(t, info.Reference)
	assert.Nil(t, info.DiscountPct)
}

func TestResolvePriceSized(t *testing.T) {
	p := sizedProduct()

	// No selection resolves the minimum-priced size with its own reference.
	info, err := ResolvePrice(p, structs.NoSelection())
	require.NoError(t, err)
	assert.Equal(t, structs.MoneyFromDecimal(150), info.Selling)
	// Reference equals selling, so no discount is shown.
	assert.Nil(t, info.DiscountPct)

	info, err = ResolvePrice(p, structs.SelectSize(11))
	require.NoError(t, err)
	assert.Equal(t, structs.MoneyFromDecimal(200), info.Selling)
	assert.Nil(t, info.Reference)

	_, err = ResolvePrice(p, structs.SelectSize(999))
	assert.ErrorIs(t, err, lib.ErrNoVariantSelected)
}

func TestResolvePriceSizedProductLevelReference(t *testing.T) {
	p := sizedProduct()
	p.HasOriginalPrice = true
	p.OriginalPrice = moneyPtr(250)

	// A size without its own reference borrows the product-level one.
	info, err := ResolvePrice(p, structs.SelectSize(11))
	require.NoError(t, err)
	require.NotNil(t, info.Reference)
	assert.Equal(t, structs.MoneyFromDecimal(250), *info.Reference)
	require.NotNil(t, info.DiscountPct)
	assert.Equal(t, 20, *info.DiscountPct)

	// The list view sticks to the cheapest entry's own reference.
	info, err = ResolvePrice(p, structs.NoSelection())
	require.NoError(t, err)
	require.NotNil(t, info.Reference)
	assert.Equal(t, structs.MoneyFromDecimal(150), *info.Reference)
	assert.Nil(t, info.DiscountPct)
}

func TestResolvePriceSizedMinimumTieBreak(t *testing.T) {
	p := &structs.Product{
		Sizes: []structs.SizeOption{
			{ID: 1, Label: "A", Price: structs.MoneyFromDecimal(80)},
			{ID: 2, Label: "B", Price: structs.MoneyFromDecimal(80), OriginalPrice: moneyPtr(120)},
		},
	}

	// Ties break by list order: entry A wins and carries no reference.
	info, err := ResolvePrice(p, structs.NoSelection())
	require.NoError(t, err)
	assert.Equal(t, structs.MoneyFromDecimal(80), info.Selling)
	assert.Nil(t, info.Reference)
}

func TestResolvePriceSingle(t *testing.T) {
	p := &structs.Product{
		HasSinglePrice: true,
		SinglePrice:    moneyPtr(45),
		OriginalPrice:  moneyPtr(60),
	}

	info, err := ResolvePrice(p, structs.NoSelection())
	require.NoError(t, err)
	assert.Equal(t, structs.MoneyFromDecimal(45), info.Selling)
	require.NotNil(t, info.DiscountPct)
	assert.Equal(t, 25, *info.DiscountPct)
}

func TestResolvePriceUnavailable(t *testing.T) {
	_, err := ResolvePrice(&structs.Product{}, structs.NoSelection())
	assert.ErrorIs(t, err, lib.ErrPriceUnavailable)
}

func TestDiscountNeverZeroPercent(t *testing.T) {
	p := &structs.Product{
		HasSinglePrice: true,
		SinglePrice:    moneyPtr(999.99),
		OriginalPrice:  moneyPtr(1000),
	}

	// 0.001% rounds to zero and must not be displayed.
	info, err := ResolvePrice(p, structs.NoSelection())
	require.NoError(t, err)
	require.NotNil(t, info.Reference)
	assert.Nil(t, info.DiscountPct)
}

func TestResolveStock(t *testing.T) {
	p := weightedProduct()

	stock := ResolveStock(p, structs.SelectWeight("500g"))
	assert.Equal(t, 3, stock.Available)
	assert.False(t, stock.OutOfStock)
	assert.True(t, stock.LowStock)

	stock = ResolveStock(p, structs.SelectWeight("250g"))
	assert.Equal(t, 10, stock.Available)
	assert.False(t, stock.LowStock)

	// An unmatched selection fails safe to zero, never to the fallback.
	stock = ResolveStock(p, structs.SelectWeight("750g"))
	assert.Equal(t, 0, stock.Available)
	assert.True(t, stock.OutOfStock)

	// No selection on a weighted product uses the product-level fallback.
	stock = ResolveStock(p, structs.NoSelection())
	assert.Equal(t, 99, stock.Available)
}

func TestResolveStockSized(t *testing.T) {
	p := sizedProduct()

	stock := ResolveStock(p, structs.SelectSize(11))
	assert.Equal(t, 4, stock.Available)
	assert.True(t, stock.LowStock)

	// A size without its own stock falls back to the product level.
	stock = ResolveStock(p, structs.SelectSize(10))
	assert.Equal(t, 7, stock.Available)
	assert.False(t, stock.LowStock)

	stock = ResolveStock(p, structs.SelectSize(999))
	assert.True(t, stock.OutOfStock)
}

func TestResolveStockNeverNegative(t *testing.T) {
	p := &structs.Product{Stock: -4}

	stock := ResolveStock(p, structs.NoSelection())
	assert.Equal(t, 0, stock.Available)
	assert.True(t, stock.OutOfStock)
	assert.False(t, stock.LowStock)
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, ClampQuantity(0, 10))
	assert.Equal(t, 1, ClampQuantity(-5, 10))
	assert.Equal(t, 10, ClampQuantity(25, 10))
	assert.Equal(t, 7, ClampQuantity(7, 10))

	// Zero stock still permits a quantity of one; the stock check itself
	// lives with the caller.
	assert.Equal(t, 1, ClampQuantity(5, 0))

	// Clamping twice changes nothing.
	once := ClampQuantity(25, 10)
	assert.Equal(t, once, ClampQuantity(once, 10))
}

func TestDefaultSelection(t *testing.T) {
	sel := DefaultSelection(weightedProduct())
	assert.Equal(t, structs.SelectWeight("250g"), sel)

	sel = DefaultSelection(sizedProduct())
	assert.Equal(t, structs.SelectSize(11), sel)

	sel = DefaultSelection(&structs.Product{HasSinglePrice: true, SinglePrice: moneyPtr(10)})
	assert.Equal(t, structs.NoSelection(), sel)
}

func TestVariantLabel(t *testing.T) {
	assert.Equal(t, "500g", VariantLabel(weightedProduct(), structs.SelectWeight("500g")))
	assert.Equal(t, "Large", VariantLabel(sizedProduct(), structs.SelectSize(11)))
	assert.Equal(t, "", VariantLabel(sizedProduct(), structs.SelectSize(999)))
	assert.Equal(t, "", VariantLabel(weightedProduct(), structs.NoSelection()))
}
