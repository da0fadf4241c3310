package sync

import (
	"fmt"

	"shopchat/internal/logger"
	"shopchat/internal/models"
	"shopchat/internal/services/webflow"
	"shopchat/internal/store"
)

type ProductSyncer struct {
	client         *webflow.Client
	store          *store.Store
	siteID         string
	catalogBaseURL string
	logger         *logger.Logger
}

func NewProductSyncer(client *webflow.Client, store *store.Store, siteID, catalogBaseURL string, logger *logger.Logger) *ProductSyncer {
	return &ProductSyncer{
		client:         client,
		store:          store,
		siteID:         siteID,
		catalogBaseURL: catalogBaseURL,
		logger:         logger,
	}
}

type ProductSyncResult struct {
	ProductID    string `json:"product_id"`
	WebflowID    string `json:"webflow_id"`
	VariantCount int    `json:"variant_count"`
	URL          string `json:"url"`
}

// Sync fetches one product with its SKUs, maps it through the option
// lookup, and upserts the product row followed by its variant rows. The
// product upsert must succeed before any variant is written.
func (s *ProductSyncer) Sync(productID string) (*ProductSyncResult, error) {
	item, err := s.client.GetProduct(s.siteID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}
	if item.Product.ID == "" {
		return nil, fmt.Errorf("product %s not found", productID)
	}

	entries, err := s.store.OptionEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to load option lookup: %w", err)
	}
	transformer := webflow.NewTransformer(s.catalogBaseURL, webflow.NewOptionResolver(entries))

	product, err := s.store.UpsertProduct(transformer.TransformProduct(item))
	if err != nil {
		return nil, err
	}

	variants := make([]models.ProductVariant, 0, len(item.SKUs))
	for i := range item.SKUs {
		variants = append(variants, *transformer.TransformVariant(product, &item.SKUs[i]))
	}
	if err := s.store.UpsertVariants(variants); err != nil {
		return nil, fmt.Errorf("failed to upsert variants for product %s: %w", product.WebflowID, err)
	}

	s.logger.Debug("Synced product %s (%d variants)", product.WebflowID, len(variants))

	return &ProductSyncResult{
		ProductID:    product.ID,
		WebflowID:    product.WebflowID,
		VariantCount: len(variants),
		URL:          product.URL,
	}, nil
}
