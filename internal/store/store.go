package store

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopchat/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// UpsertProduct writes the product keyed on its vendor id and returns the
// row carrying its surrogate id. Re-syncing an unchanged product overwrites
// derived fields without creating a new row.
func (s *Store) UpsertProduct(p *models.Product) (*models.Product, error) {
	var existing models.Product
	err := s.db.Where("webflow_id = ?", p.WebflowID).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		if err := s.db.Create(p).Error; err != nil {
			return nil, fmt.Errorf("failed to create product %s: %w", p.WebflowID, err)
		}
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %s: %w", p.WebflowID, err)
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if err := s.db.Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", p.WebflowID, err)
	}
	return p, nil
}

// UpsertVariants batch-upserts variant rows keyed on the vendor SKU id.
func (s *Store) UpsertVariants(variants []models.ProductVariant) error {
	if len(variants) == 0 {
		return nil
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "webflow_sku_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"webflow_product_id", "product_id", "sku", "name", "slug",
			"price", "currency", "sku_values", "payload", "updated_at",
		}),
	}).Create(&variants).Error
}

// UpsertOptions batch-upserts lookup rows keyed on (field_slug, option_id).
func (s *Store) UpsertOptions(entries []models.OptionLookup) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "field_slug"}, {Name: "option_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(&entries).Error
}

// OptionEntries loads the full lookup table.
func (s *Store) OptionEntries() ([]models.OptionLookup, error) {
	var entries []models.OptionLookup
	err := s.db.Find(&entries).Error
	return entries, err
}

func (s *Store) CountVariants(productID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.ProductVariant{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (s *Store) InsertDocument(doc *models.Document) error {
	return s.db.Create(doc).Error
}

func (s *Store) InsertMessage(m *models.Message) error {
	return s.db.Create(m).Error
}

// DocumentMatch is one similarity-search hit.
type DocumentMatch struct {
	ID         string  `json:"id"`
	Content    string  `json:"content"`
	Metadata   string  `json:"metadata"`
	Similarity float64 `json:"similarity"`
}

// MatchDocuments runs a cosine-distance search over the documents table.
func (s *Store) MatchDocuments(embedding []float32, limit int) ([]DocumentMatch, error) {
	vec := FormatVector(embedding)
	var matches []DocumentMatch
	err := s.db.Raw(`
		SELECT id, content, metadata, 1 - (embedding <=> ?::vector) AS similarity
		FROM documents
		ORDER BY embedding <=> ?::vector
		LIMIT ?`, vec, vec, limit).Scan(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	return matches, nil
}

// FormatVector renders an embedding as a pgvector literal.
func FormatVector(embedding []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
