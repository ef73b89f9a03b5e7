package catalog

import "giftbasket_server/structs"

// NormalizeMedia flattens a product's media fields into one ordered, typed
// sequence: all images first, then videos, then enabled Instagram embeds.
// The inputs are already canonical (the structs list types absorb the
// array-or-JSON-string encoding and decode failures during unmarshalling),
// so a malformed field simply contributes nothing here.
func NormalizeMedia(images, videos structs.StringList, embeds structs.EmbedList) []structs.MediaItem {
	items := make([]structs.MediaItem, 0, len(images)+len(videos)+len(embeds))

	for _, url := range images {
		items = append(items, structs.MediaItem{Kind: structs.MediaImage, URL: url})
	}
	for _, url := range videos {
		items = append(items, structs.MediaItem{Kind: structs.MediaVideo, URL: url})
	}
	for _, embed := range embeds {
		if !embed.Enabled {
			continue
		}
		items = append(items, structs.MediaItem{Kind: structs.MediaInstagram, URL: embed.URL})
	}

	return items
}

// ProductMedia is a convenience wrapper over NormalizeMedia for a full
// product record.
func ProductMedia(p *structs.Product) []structs.MediaItem {
	return NormalizeMedia(p.Images, p.Videos, p.InstagramEmbeds)
}
