package mock

import (
	"context"

	"github.com/fwojciec/storeprofile"
)

var _ storeprofile.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of storeprofile.CatalogService.
type CatalogService struct {
	ProductsFn func(ctx context.Context, baseURL string) ([]*storeprofile.Product, error)
}

func (s *CatalogService) Products(ctx context.Context, baseURL string) ([]*storeprofile.Product, error) {
	return s.ProductsFn(ctx, baseURL)
}
