package sync

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"shopchat/internal/logger"
	"shopchat/internal/services/webflow"
)

const (
	pageSize = 100

	// Minimum spacing between per-product vendor calls. Items are
	// processed strictly sequentially to stay under the vendor's rate
	// limit.
	itemDelay = 500 * time.Millisecond
)

type CatalogSyncer struct {
	client   *webflow.Client
	products *ProductSyncer
	siteID   string
	limiter  *rate.Limiter
	logger   *logger.Logger
}

func NewCatalogSyncer(client *webflow.Client, products *ProductSyncer, siteID string, logger *logger.Logger) *CatalogSyncer {
	return &CatalogSyncer{
		client:   client,
		products: products,
		siteID:   siteID,
		limiter:  rate.NewLimiter(rate.Every(itemDelay), 1),
		logger:   logger,
	}
}

type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type CatalogSyncResult struct {
	TotalFound int         `json:"totalFound"`
	Synced     int         `json:"synced"`
	Failed     int         `json:"failed"`
	Errors     []ItemError `json:"errors"`
}

// Sync paginates the site's product listing and runs a single-product sync
// per item. A failed item is recorded and skipped; only a page fetch
// failure aborts the run.
func (s *CatalogSyncer) Sync(ctx context.Context) (*CatalogSyncResult, error) {
	result := &CatalogSyncResult{Errors: []ItemError{}}
	offset := 0

	for {
		page, err := s.client.GetProducts(s.siteID, offset, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch product page at offset %d: %w", offset, err)
		}

		if offset == 0 {
			result.TotalFound = page.Pagination.Total
			s.logger.Info("Catalog sync started: %d products reported", result.TotalFound)
		}

		if len(page.Items) == 0 {
			break
		}

		for i := range page.Items {
			id := page.Items[i].Product.ID

			if _, err := s.products.Sync(id); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, ItemError{ID: id, Error: err.Error()})
				s.logger.Error("Failed to sync product %s: %v", id, err)
			} else {
				result.Synced++
			}

			if err := s.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("catalog sync interrupted: %w", err)
			}
		}

		if len(page.Items) < pageSize {
			break
		}
		offset += pageSize
	}

	s.logger.Info("Catalog sync finished: %d synced, %d failed", result.Synced, result.Failed)

	return result, nil
}
