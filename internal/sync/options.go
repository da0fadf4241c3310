package sync

import (
	"fmt"

	"shopchat/internal/logger"
	"shopchat/internal/models"
	"shopchat/internal/services/webflow"
	"shopchat/internal/store"
)

type OptionSyncer struct {
	client *webflow.Client
	store  *store.Store
	logger *logger.Logger
}

func NewOptionSyncer(client *webflow.Client, store *store.Store, logger *logger.Logger) *OptionSyncer {
	return &OptionSyncer{
		client: client,
		store:  store,
		logger: logger,
	}
}

type OptionSyncResult struct {
	Synced int `json:"synced"`
}

// Sync fetches the collection's field schema and upserts one lookup row per
// (field slug, option id, option name). An optional allow-list of field
// slugs or ids restricts which fields are processed. A collection with no
// matching fields succeeds with zero rows.
func (s *OptionSyncer) Sync(collectionID string, fields []string) (*OptionSyncResult, error) {
	if collectionID == "" {
		return nil, fmt.Errorf("collection id is required")
	}

	collection, err := s.client.GetCollection(collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collection %s: %w", collectionID, err)
	}

	allow := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		allow[f] = struct{}{}
	}

	var entries []models.OptionLookup
	for _, field := range collection.Fields {
		if !field.IsOption() || field.Validations == nil {
			continue
		}
		if len(allow) > 0 {
			_, bySlug := allow[field.Slug]
			_, byID := allow[field.ID]
			if !bySlug && !byID {
				continue
			}
		}
		for _, opt := range field.Validations.Options {
			if opt.ID == "" || opt.Name == "" {
				continue
			}
			entries = append(entries, models.OptionLookup{
				FieldSlug: field.Slug,
				OptionID:  opt.ID,
				Name:      opt.Name,
			})
		}
	}

	if err := s.store.UpsertOptions(entries); err != nil {
		return nil, fmt.Errorf("failed to upsert option lookup: %w", err)
	}

	s.logger.Info("Synced %d option lookup rows from collection %s", len(entries), collectionID)

	return &OptionSyncResult{Synced: len(entries)}, nil
}
