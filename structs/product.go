package structs

import "encoding/json"

// PricingMode identifies which of the three mutually exclusive price
// encodings a product record uses. It is derived from field presence and
// recomputed whenever the record changes, never stored.
type PricingMode string

const (
	PricingModeSingle   PricingMode = "single"
	PricingModeSized    PricingMode = "sized"
	PricingModeWeighted PricingMode = "weighted"
	PricingModeNone     PricingMode = ""
)

// Product is a catalog record as served by the upstream API. The
// heterogeneously encoded fields (weight options, images, videos, embeds)
// are canonicalized by their list types during JSON decoding; nothing past
// this boundary branches on the wire encoding.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Occasion    string `json:"occasion,omitempty"`
	Trending    bool   `json:"trending,omitempty"`

	HasSinglePrice bool   `json:"has_single_price"`
	SinglePrice    *Money `json:"single_price,omitempty"`
	OriginalPrice  *Money `json:"original_price,omitempty"`
	// HasOriginalPrice marks the product-level original price as a
	// comparable reference for sized products.
	HasOriginalPrice bool `json:"has_original_price,omitempty"`

	Sizes         []SizeOption     `json:"sizes,omitempty"`
	WeightOptions WeightOptionList `json:"weight_options,omitempty"`

	// Stock is the product-level fallback used when no variant-level
	// stock applies.
	Stock int `json:"stock"`

	Images          StringList `json:"images,omitempty"`
	Videos          StringList `json:"videos,omitempty"`
	InstagramEmbeds EmbedList  `json:"instagram_embeds,omitempty"`
}

// SizeOption is a purchasable size variant.
type SizeOption struct {
	ID            int64  `json:"id"`
	Label         string `json:"label"`
	Price         Money  `json:"price"`
	OriginalPrice *Money `json:"original_price,omitempty"`
	Stock         *int   `json:"stock,omitempty"`
}

// WeightOption is a purchasable weight variant.
type WeightOption struct {
	Weight        string `json:"weight"`
	Price         Money  `json:"price"`
	OriginalPrice *Money `json:"original_price,omitempty"`
	Stock         *int   `json:"stock,omitempty"`
}

// InstagramEmbed is a social embed attached to a product. Disabled embeds
// are dropped during media normalization.
type InstagramEmbed struct {
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

// StringList accepts either a native JSON array of strings or a
// JSON-encoded string containing one. A malformed field decodes to an empty
// list rather than failing the surrounding record.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		var nested []string
		if err := json.Unmarshal([]byte(encoded), &nested); err == nil {
			*l = nested
			return nil
		}
	}

	*l = nil
	return nil
}

// WeightOptionList is the array-or-JSON-string form of weight options.
type WeightOptionList []WeightOption

func (l *WeightOptionList) UnmarshalJSON(data []byte) error {
	var direct []WeightOption
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		var nested []WeightOption
		if err := json.Unmarshal([]byte(encoded), &nested); err == nil {
			*l = nested
			return nil
		}
	}

	*l = nil
	return nil
}

// EmbedList is the array-or-JSON-string form of Instagram embeds.
type EmbedList []InstagramEmbed

func (l *EmbedList) UnmarshalJSON(data []byte) error {
	var direct []InstagramEmbed
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		var nested []InstagramEmbed
		if err := json.Unmarshal([]byte(encoded), &nested); err == nil {
			*l = nested
			return nil
		}
	}

	*l = nil
	return nil
}

// SelectionKind enum
type SelectionKind string

const (
	SelectionNone   SelectionKind = "none"
	SelectionSize   SelectionKind = "size"
	SelectionWeight SelectionKind = "weight"
)

// VariantSelection is the transient, caller-owned variant choice. It must
// be recomputed with DefaultSelection whenever the viewed product changes.
type VariantSelection struct {
	Kind   SelectionKind `json:"kind"`
	SizeID int64         `json:"size_id,omitempty"`
	Weight string        `json:"weight,omitempty"`
}

func NoSelection() VariantSelection {
	return VariantSelection{Kind: SelectionNone}
}

func SelectSize(id int64) VariantSelection {
	return VariantSelection{Kind: SelectionSize, SizeID: id}
}

func SelectWeight(label string) VariantSelection {
	return VariantSelection{Kind: SelectionWeight, Weight: label}
}

// PriceInfo is the resolved price for a product and selection. DiscountPct
// is present only when Reference > Selling > 0.
type PriceInfo struct {
	Selling     Money  `json:"selling"`
	Reference   *Money `json:"reference,omitempty"`
	DiscountPct *int   `json:"discount_pct,omitempty"`
}

// StockInfo is the resolved, variant-scoped availability.
type StockInfo struct {
	Available  int  `json:"available"`
	OutOfStock bool `json:"out_of_stock"`
	LowStock   bool `json:"low_stock"`
}
