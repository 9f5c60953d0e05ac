package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/storeprofile"
	"golang.org/x/time/rate"
)

var (
	_ storeprofile.DomainLimiter = (*DomainLimiter)(nil)
	_ storeprofile.Fetcher       = (*RateLimitedFetcher)(nil)
)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Requests to different storefronts proceed independently while requests
// to the same storefront are spaced out.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain, with no bursting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// RateLimitedFetcher waits on a DomainLimiter before every fetch.
type RateLimitedFetcher struct {
	fetcher storeprofile.Fetcher
	limiter storeprofile.DomainLimiter
}

// NewRateLimitedFetcher wraps fetcher so requests are paced per host.
func NewRateLimitedFetcher(fetcher storeprofile.Fetcher, limiter storeprofile.DomainLimiter) *RateLimitedFetcher {
	return &RateLimitedFetcher{fetcher: fetcher, limiter: limiter}
}

// Fetch waits for the host's turn and then delegates. A wait interrupted by
// the context is reported as EUNREACHABLE.
func (f *RateLimitedFetcher) Fetch(ctx context.Context, rawURL string) (*storeprofile.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, storeprofile.Errorf(storeprofile.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return nil, storeprofile.Errorf(storeprofile.EUNREACHABLE, "rate limit wait for %s: %v", rawURL, err)
	}
	return f.fetcher.Fetch(ctx, rawURL)
}
