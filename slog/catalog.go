package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storeprofile"
)

// Ensure LoggingCatalogService implements storeprofile.CatalogService.
var _ storeprofile.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with logging.
//
// Unparseable variant prices never fail a record; the number of products
// left without a price is reported at debug level instead.
type LoggingCatalogService struct {
	next   storeprofile.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next storeprofile.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// Products delegates to the wrapped service and logs the resolution.
func (s *LoggingCatalogService) Products(ctx context.Context, baseURL string) (products []*storeprofile.Product, err error) {
	defer func(begin time.Time) {
		s.logger.Info("catalog resolution",
			"url", baseURL,
			"count", len(products),
			"duration", time.Since(begin),
			"err", err,
		)
		if unpriced := countUnpriced(products); unpriced > 0 {
			s.logger.Debug("catalog products without price",
				"url", baseURL,
				"count", unpriced,
			)
		}
	}(time.Now())
	return s.next.Products(ctx, baseURL)
}

func countUnpriced(products []*storeprofile.Product) int {
	n := 0
	for _, p := range products {
		if p.PriceMin == nil {
			n++
		}
	}
	return n
}
