package products

import (
	"giftbasket_server/catalog"
	"giftbasket_server/structs"
)

// resolvedProductPayload shapes a product the way the storefront needs
// it: the raw product plus the pricing mode, the price and stock for
// the given selection, and the normalized media list. Price is omitted
// when the product has no resolvable price at all.
func resolvedProductPayload(p *structs.Product, sel structs.VariantSelection) map[string]any {
	payload := map[string]any{
		"product":      p,
		"pricing_mode": catalog.ResolvePricingMode(p),
		"stock":        catalog.ResolveStock(p, sel),
		"media":        catalog.ProductMedia(p),
	}

	if price, err := catalog.ResolvePrice(p, sel); err == nil {
		payload["price"] = price
	}

	if label := catalog.VariantLabel(p, sel); label != "" {
		payload["variant_label"] = label
	}

	return payload
}
