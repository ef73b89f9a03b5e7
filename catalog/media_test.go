package catalog

import (
	"encoding/json"
	"testing"

	"giftbasket_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMediaOrdering(t *testing.T) {
	items := NormalizeMedia(
		structs.StringList{"img1.jpg", "img2.jpg"},
		structs.StringList{"clip.mp4"},
		structs.EmbedList{
			{URL: "https://instagram.com/p/abc", Enabled: true},
			{URL: "https://instagram.com/p/def", Enabled: false},
			{URL: "https://instagram.com/p/ghi", Enabled: true},
		},
	)

	require.Len(t, items, 4)
	assert.Equal(t, structs.MediaItem{Kind: structs.MediaImage, URL: "img1.jpg"}, items[0])
	assert.Equal(t, structs.MediaItem{Kind: structs.MediaImage, URL: "img2.jpg"}, items[1])
	assert.Equal(t, structs.MediaItem{Kind: structs.MediaVideo, URL: "clip.mp4"}, items[2])
	assert.Equal(t, structs.MediaItem{Kind: structs.MediaInstagram, URL: "https://instagram.com/p/ghi"}, items[3])
}

func TestNormalizeMediaEmpty(t *testing.T) {
	items := NormalizeMedia(nil, nil, nil)
	assert.Empty(t, items)
}

func TestProductMediaFromWireEncodings(t *testing.T) {
	// images as a JSON-encoded string, videos as a native array, embeds
	// malformed: the decode boundary canonicalizes all three.
	raw := `{
		"id": 5,
		"name": "Fruit Box",
		"images": "[\"a.jpg\",\"b.jpg\"]",
		"videos": ["v.mp4"],
		"instagram_embeds": "{not json",
		"stock": 3
	}`

	var p structs.Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	items := ProductMedia(&p)
	require.Len(t, items, 3)
	assert.Equal(t, structs.MediaImage, items[0].Kind)
	assert.Equal(t, "a.jpg", items[0].URL)
	assert.Equal(t, structs.MediaVideo, items[2].Kind)
}
