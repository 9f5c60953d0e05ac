// Package http provides net/http implementations of the storeprofile
// network services: page fetching and catalog resolution.
package http

import (
	"context"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/storeprofile"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 8 * time.Second

// DefaultUserAgent identifies the fetcher to storefronts.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ShopifyInsightsFetcher/1.0; +https://example.com/bot)"

// Ensure Fetcher implements storeprofile.Fetcher at compile time.
var _ storeprofile.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using plain HTTP GET requests. Redirects are
// followed and client-side scripts are never executed.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (8s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient replaces the underlying HTTP client. The client's own timeout
// is overridden by the fetcher timeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	client := *f.client
	client.Timeout = f.timeout
	f.client = &client

	return f
}

// Fetch retrieves the page at url. The body is decoded to UTF-8.
//
// Returns EUNREACHABLE when the request cannot be completed. A non-2xx
// status yields a *StatusError together with the response.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*storeprofile.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, storeprofile.Errorf(storeprofile.EUNREACHABLE, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, storeprofile.Errorf(storeprofile.EUNREACHABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, storeprofile.Errorf(storeprofile.EUNREACHABLE, "read body of %s: %v", url, err)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	result := &storeprofile.Response{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Body:       decodeBody(body, resp.Header.Get("Content-Type")),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &storeprofile.StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	return result, nil
}

// decodeBody converts body to UTF-8. Valid UTF-8 is returned unchanged;
// otherwise the encoding is sniffed from the Content-Type header, BOM and
// meta tags.
func decodeBody(body []byte, contentType string) string {
	if utf8.Valid(body) {
		return string(body)
	}
	enc, _, _ := charset.DetermineEncoding(body, contentType)
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
