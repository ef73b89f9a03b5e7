// Package catalog implements the variant and pricing resolution engine: the
// pure transforms that turn a heterogeneously encoded product record into a
// consistent price, stock and media view. Everything in this package is
// synchronous and side-effect free; state lives in the services layer.
package catalog

import (
	"math"

	"giftbasket_server/lib"
	"giftbasket_server/structs"
)

// lowStockThreshold is the largest availability still flagged as low stock.
const lowStockThreshold = 5

// ResolvePricingMode derives which price encoding a product uses.
// Weight options win over a single price, which wins over sizes; a product
// matching none of the three has no resolvable price.
func ResolvePricingMode(p *structs.Product) structs.PricingMode {
	switch {
	case len(p.WeightOptions) > 0:
		return structs.PricingModeWeighted
	case p.HasSinglePrice && p.SinglePrice != nil:
		return structs.PricingModeSingle
	case len(p.Sizes) > 0:
		return structs.PricingModeSized
	default:
		return structs.PricingModeNone
	}
}

// DefaultSelection returns the selection a UI should fall back to whenever
// the viewed product changes: the first size or weight option, or the
// single-price virtual variant.
func DefaultSelection(p *structs.Product) structs.VariantSelection {
	switch ResolvePricingMode(p) {
	case structs.PricingModeWeighted:
		return structs.SelectWeight(p.WeightOptions[0].Weight)
	case structs.PricingModeSized:
		return structs.SelectSize(p.Sizes[0].ID)
	default:
		return structs.NoSelection()
	}
}

// ResolvePrice computes the selling price, the struck-through reference
// price and the discount percentage for a product and selection.
func ResolvePrice(p *structs.Product, sel structs.VariantSelection) (structs.PriceInfo, error) {
	switch ResolvePricingMode(p) {
	case structs.PricingModeWeighted:
		return resolveWeightedPrice(p, sel)
	case structs.PricingModeSingle:
		return withDiscount(structs.PriceInfo{
			Selling:   *p.SinglePrice,
			Reference: p.OriginalPrice,
		}), nil
	case structs.PricingModeSized:
		return resolveSizedPrice(p, sel)
	default:
		return structs.PriceInfo{}, lib.ErrPriceUnavailable
	}
}

func resolveWeightedPrice(p *structs.Product, sel structs.VariantSelection) (structs.PriceInfo, error) {
	if sel.Kind != structs.SelectionWeight {
		// Selection resets to the first option on product change; a
		// missing selection resolves the same default.
		sel = structs.SelectWeight(p.WeightOptions[0].Weight)
	}

	opt := findWeightOption(p, sel.Weight)
	if opt == nil {
		return structs.PriceInfo{}, lib.ErrNoVariantSelected
	}

	info := structs.PriceInfo{Selling: opt.Price}
	// Weighted references only count when strictly above the selling price.
	if opt.OriginalPrice != nil && *opt.OriginalPrice > opt.Price {
		info.Reference = opt.OriginalPrice
	}
	return withDiscount(info), nil
}

func resolveSizedPrice(p *structs.Product, sel structs.VariantSelection) (structs.PriceInfo, error) {
	if sel.Kind == structs.SelectionSize {
		size := findSize(p, sel.SizeID)
		if size == nil {
			return structs.PriceInfo{}, lib.ErrNoVariantSelected
		}

		info := structs.PriceInfo{Selling: size.Price, Reference: size.OriginalPrice}
		if info.Reference == nil && p.HasOriginalPrice {
			info.Reference = p.OriginalPrice
		}
		return withDiscount(info), nil
	}

	// List view, no size chosen yet: the minimum-priced size wins, ties
	// broken by list order, and the reference must belong to that same
	// entry, never an independent minimum of references.
	cheapest := &p.Sizes[0]
	for i := 1; i < len(p.Sizes); i++ {
		if p.Sizes[i].Price < cheapest.Price {
			cheapest = &p.Sizes[i]
		}
	}

	return withDiscount(structs.PriceInfo{
		Selling:   cheapest.Price,
		Reference: cheapest.OriginalPrice,
	}), nil
}

// withDiscount fills in DiscountPct. A percentage is emitted only when the
// reference is strictly above a positive selling price and the rounded
// value is positive, so "0% OFF" is never displayed.
func withDiscount(info structs.PriceInfo) structs.PriceInfo {
	if info.Reference == nil || *info.Reference <= info.Selling || info.Selling <= 0 {
		return info
	}

	pct := int(math.Round(float64(*info.Reference-info.Selling) / float64(*info.Reference) * 100))
	if pct > 0 {
		info.DiscountPct = &pct
	}
	return info
}

// ResolveStock computes the variant-scoped availability. A selection that
// no longer matches the catalog (stale or edited record) resolves to zero,
// never to unlimited; the result is never negative.
func ResolveStock(p *structs.Product, sel structs.VariantSelection) structs.StockInfo {
	stock := p.Stock

	switch {
	case ResolvePricingMode(p) == structs.PricingModeWeighted && sel.Kind == structs.SelectionWeight:
		opt := findWeightOption(p, sel.Weight)
		if opt == nil {
			stock = 0
		} else if opt.Stock != nil {
			stock = *opt.Stock
		}
	case ResolvePricingMode(p) == structs.PricingModeSized && sel.Kind == structs.SelectionSize:
		size := findSize(p, sel.SizeID)
		if size == nil {
			stock = 0
		} else if size.Stock != nil {
			stock = *size.Stock
		}
	}

	available := max(0, stock)
	return structs.StockInfo{
		Available:  available,
		OutOfStock: available == 0,
		LowStock:   available > 0 && available <= lowStockThreshold,
	}
}

// ClampQuantity clamps a requested quantity into [1, max(1, stock)].
// Clamping is silent: stock fluctuates and a purchase flow should not
// block on it.
func ClampQuantity(requested, stock int) int {
	ceiling := max(1, stock)
	return max(1, min(requested, ceiling))
}

// VariantLabel renders the selection as the label stored on a cart line:
// the size label, the weight label, or empty for the single virtual
// variant.
func VariantLabel(p *structs.Product, sel structs.VariantSelection) string {
	switch sel.Kind {
	case structs.SelectionSize:
		if size := findSize(p, sel.SizeID); size != nil {
			return size.Label
		}
	case structs.SelectionWeight:
		return sel.Weight
	}
	return ""
}

func findWeightOption(p *structs.Product, label string) *structs.WeightOption {
	for i := range p.WeightOptions {
		if p.WeightOptions[i].Weight == label {
			return &p.WeightOptions[i]
		}
	}
	return nil
}

func findSize(p *structs.Product, id int64) *structs.SizeOption {
	for i := range p.Sizes {
		if p.Sizes[i].ID == id {
			return &p.Sizes[i]
		}
	}
	return nil
}
