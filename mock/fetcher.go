package mock

import (
	"context"

	"github.com/fwojciec/storeprofile"
)

var _ storeprofile.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of storeprofile.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*storeprofile.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*storeprofile.Response, error) {
	return f.FetchFn(ctx, url)
}
