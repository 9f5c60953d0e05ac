package mock

import (
	"context"

	"github.com/fwojciec/storeprofile"
)

var _ storeprofile.ProfileExtractor = (*ProfileExtractor)(nil)

// ProfileExtractor is a mock implementation of storeprofile.ProfileExtractor.
type ProfileExtractor struct {
	ExtractFn func(ctx context.Context, websiteURL string) (*storeprofile.BrandProfile, error)
}

func (e *ProfileExtractor) Extract(ctx context.Context, websiteURL string) (*storeprofile.BrandProfile, error) {
	return e.ExtractFn(ctx, websiteURL)
}
