package catalog

import (
	"github.com/redeinformatica/vitrine/internal/banner"
	"github.com/redeinformatica/vitrine/internal/category"
	"github.com/redeinformatica/vitrine/internal/item"
)

// CategoryView is a category enriched with download URLs for its blobs.
type CategoryView struct {
	category.Category
	ImageURL  *string
	BannerURL *string
}

// ItemView is an item enriched with one URL per image reference, in order.
// Unresolvable references yield a nil entry.
type ItemView struct {
	item.Item
	ImageURLs []*string
}

// BannerView is a banner enriched with the download URL of its image.
type BannerView struct {
	banner.Banner
	ImageURL *string
}
