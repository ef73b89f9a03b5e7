package structs

// MediaKind enum
type MediaKind string

const (
	MediaImage     MediaKind = "image"
	MediaVideo     MediaKind = "video"
	MediaInstagram MediaKind = "instagram"
)

// MediaItem is one entry in a product's normalized media sequence.
type MediaItem struct {
	Kind MediaKind `json:"kind"`
	URL  string    `json:"url"`
}
