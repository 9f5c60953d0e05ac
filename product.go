package storeprofile

import "context"

// Product represents a catalog item of a storefront.
//
// Placeholder products synthesized for unmatched homepage links carry only
// Handle and URL.
type Product struct {
	ID       *int64           `json:"id"`
	Title    *string          `json:"title"`
	Handle   *string          `json:"handle"`
	URL      *string          `json:"url"`
	Variants []map[string]any `json:"variants"`
	Tags     []string         `json:"tags"`
	Image    *string          `json:"image"`
	BodyHTML *string          `json:"body_html"`

	// PriceMin and PriceMax span the parseable variant prices.
	// Both are nil when no variant carries a parseable price.
	PriceMin *float64 `json:"price_min"`
	PriceMax *float64 `json:"price_max"`
}

// CatalogService resolves the product catalog of a storefront.
type CatalogService interface {
	// Products probes the well-known catalog endpoints of the site at
	// baseURL and returns the normalized products of the first endpoint
	// that answers with a catalog. Returns an empty slice when no endpoint
	// does; probe failures are not errors.
	Products(ctx context.Context, baseURL string) ([]*Product, error)
}

// CatalogPaths are the catalog endpoints probed in order, relative to the
// site origin.
var CatalogPaths = []string{
	"/products.json?limit=250",
	"/products.json",
}

// ptr returns a pointer to v.
func ptr[T any](v T) *T {
	return &v
}
