// Package slog provides log/slog decorators for storeprofile services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storeprofile"
)

// Ensure LoggingFetcher implements storeprofile.Fetcher.
var _ storeprofile.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   storeprofile.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next storeprofile.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *storeprofile.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		if resp != nil {
			status = resp.StatusCode
			size = len(resp.Body)
		}
		f.logger.Debug("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
