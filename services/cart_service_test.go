package services

import (
	"testing"

	"giftbasket_server/catalog"
	"giftbasket_server/structs"
	"giftbasket_server/structs/tables"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockPtr(v int) *int { return &v }

func TestSelectionFromLabel(t *testing.T) {
	p := &structs.Product{
		Sizes: []structs.SizeOption{
			{ID: 1, Label: "Small", Price: structs.MoneyFromDecimal(10)},
			{ID: 2, Label: "Large", Price: structs.MoneyFromDecimal(20)},
		},
		Stock: 8,
	}

	sel := selectionFromLabel(p, "Large")
	assert.Equal(t, structs.SelectSize(2), sel)

	// A stale size label must not fall back to product-level stock.
	sel = selectionFromLabel(p, "Gone")
	stock := catalog.ResolveStock(p, sel)
	assert.True(t, stock.OutOfStock)

	assert.Equal(t, structs.NoSelection(), selectionFromLabel(p, ""))
}

func TestSelectionFromLabelWeighted(t *testing.T) {
	p := &structs.Product{
		WeightOptions: structs.WeightOptionList{
			{Weight: "250g", Price: structs.MoneyFromDecimal(60), Stock: stockPtr(4)},
		},
		Stock: 9,
	}

	sel := selectionFromLabel(p, "250g")
	assert.Equal(t, structs.SelectWeight("250g"), sel)

	// A weight label the catalog dropped also resolves to zero stock.
	sel = selectionFromLabel(p, "500g")
	stock := catalog.ResolveStock(p, sel)
	assert.True(t, stock.OutOfStock)
}

func TestReclampLine(t *testing.T) {
	p := &structs.Product{
		Sizes: []structs.SizeOption{
			{ID: 1, Label: "Small", Price: structs.MoneyFromDecimal(10), Stock: stockPtr(2)},
		},
		Stock: 8,
	}

	// The catalog shrank below the stored quantity: the line is rewritten.
	line := &tables.CartLine{VariantLabel: "Small", Quantity: 5, StockCeiling: 6}
	ceiling, quantity, changed := reclampLine(line, p)
	assert.True(t, changed)
	assert.Equal(t, 2, ceiling)
	assert.Equal(t, 2, quantity)

	// Already within the fresh ceiling: no rewrite.
	line = &tables.CartLine{VariantLabel: "Small", Quantity: 1, StockCeiling: 2}
	_, _, changed = reclampLine(line, p)
	assert.False(t, changed)

	// A stale label resolves to zero stock; the line collapses to the
	// quantity floor instead of borrowing product-level stock.
	line = &tables.CartLine{VariantLabel: "Gone", Quantity: 4, StockCeiling: 6}
	ceiling, quantity, changed = reclampLine(line, p)
	assert.True(t, changed)
	assert.Equal(t, 1, ceiling)
	assert.Equal(t, 1, quantity)
}

func TestBuildView(t *testing.T) {
	cs := &CartService{}
	cartID := uuid.New()

	lines := []tables.CartLine{
		{Id: uuid.New(), ProductId: 1, VariantLabel: "500g", UnitPrice: 10000, Quantity: 2, StockCeiling: 3},
		{Id: uuid.New(), ProductId: 2, UnitPrice: 4500, Quantity: 1, StockCeiling: 10},
	}

	view := cs.buildView(cartID, lines)
	require.Len(t, view.Lines, 2)

	assert.Equal(t, cartID, view.CartID)
	assert.Equal(t, structs.Money(20000), view.Lines[0].LineTotal)
	assert.Equal(t, structs.Money(4500), view.Lines[1].LineTotal)
	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, structs.Money(24500), view.Total)
}

func TestBuildViewEmpty(t *testing.T) {
	cs := &CartService{}

	view := cs.buildView(uuid.New(), nil)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.ItemCount)
	assert.Zero(t, view.Total)
}
