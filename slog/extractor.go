package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storeprofile"
)

// Ensure LoggingExtractor implements storeprofile.ProfileExtractor.
var _ storeprofile.ProfileExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a ProfileExtractor with logging.
type LoggingExtractor struct {
	next   storeprofile.ProfileExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next storeprofile.ProfileExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs a summary.
func (e *LoggingExtractor) Extract(ctx context.Context, websiteURL string) (profile *storeprofile.BrandProfile, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Error("profile extraction",
				"url", websiteURL,
				"code", storeprofile.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		var products, heroes, faqs, links int
		if profile != nil {
			products = len(profile.Products)
			heroes = len(profile.HeroProducts)
			faqs = len(profile.FAQs)
			links = len(profile.ImportantLinks)
		}
		e.logger.Info("profile extraction",
			"url", websiteURL,
			"products", products,
			"heroes", heroes,
			"faqs", faqs,
			"links", links,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(ctx, websiteURL)
}
