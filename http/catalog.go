package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/storeprofile"
)

// Ensure CatalogService implements storeprofile.CatalogService at compile time.
var _ storeprofile.CatalogService = (*CatalogService)(nil)

// CatalogService resolves storefront catalogs from their public JSON
// listing endpoints.
type CatalogService struct {
	fetcher storeprofile.Fetcher
	paths   []string
}

// NewCatalogService creates a CatalogService that probes
// storeprofile.CatalogPaths through fetcher.
func NewCatalogService(fetcher storeprofile.Fetcher) *CatalogService {
	return &CatalogService{
		fetcher: fetcher,
		paths:   storeprofile.CatalogPaths,
	}
}

// Products probes the catalog endpoints in order and returns the products
// of the first one that answers 200 with a catalog body. Failed probes are
// skipped. Returns an empty slice when no endpoint answers.
func (s *CatalogService) Products(ctx context.Context, baseURL string) ([]*storeprofile.Product, error) {
	u, err := storeprofile.ParseWebsite(baseURL)
	if err != nil {
		return nil, err
	}
	origin := storeprofile.Origin(u)

	for _, path := range s.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := s.fetcher.Fetch(ctx, origin+path)
		if err != nil || resp.StatusCode != http.StatusOK {
			continue
		}

		products, err := storeprofile.ParseCatalog([]byte(resp.Body), origin)
		if err != nil {
			continue
		}
		return products, nil
	}

	return []*storeprofile.Product{}, nil
}
