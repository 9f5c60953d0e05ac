package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/storeprofile"
)

// Ensure LoggingPageAnalyzer implements storeprofile.PageAnalyzer.
var _ storeprofile.PageAnalyzer = (*LoggingPageAnalyzer)(nil)

// LoggingPageAnalyzer wraps a PageAnalyzer with debug logging of the
// signals found on each page.
type LoggingPageAnalyzer struct {
	next   storeprofile.PageAnalyzer
	logger *slog.Logger
}

// NewLoggingPageAnalyzer creates a new LoggingPageAnalyzer.
func NewLoggingPageAnalyzer(next storeprofile.PageAnalyzer, logger *slog.Logger) *LoggingPageAnalyzer {
	return &LoggingPageAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the result.
func (a *LoggingPageAnalyzer) Analyze(html string, baseURL string) (page *storeprofile.Page, err error) {
	defer func(begin time.Time) {
		var links, products, faqs int
		if page != nil {
			links = page.Links.Len()
			products = len(page.ProductLinks)
			faqs = len(page.FAQs)
		}
		a.logger.Debug("page analysis",
			"url", baseURL,
			"links", links,
			"product_links", products,
			"faqs", faqs,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Analyze(html, baseURL)
}
