package storeprofile

import (
	"context"
	"fmt"
)

// Response is the result of fetching a single URL.
type Response struct {
	URL        string
	StatusCode int
	Body       string
}

// Fetcher retrieves raw page content over the network.
// Client-side scripts are never executed.
type Fetcher interface {
	// Fetch issues a GET request for the URL and returns the response.
	// Returns EUNREACHABLE if the request could not be completed and a
	// *StatusError (alongside the response) for non-2xx statuses.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// StatusError reports a completed request with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
