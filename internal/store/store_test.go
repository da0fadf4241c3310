package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shopchat/internal/models"
)

func setupTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.OptionLookup{}, &models.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return New(db), db
}

func TestUpsertProductAssignsSurrogateID(t *testing.T) {
	st, _ := setupTestStore(t)

	p, err := st.UpsertProduct(&models.Product{WebflowID: "p1", Name: "Widget"})
	if err != nil {
		t.Fatalf("UpsertProduct() error = %v", err)
	}
	if p.ID == "" {
		t.Error("surrogate id not assigned on insert")
	}
}

func TestUpsertProductIdempotent(t *testing.T) {
	st, db := setupTestStore(t)

	first, err := st.UpsertProduct(&models.Product{WebflowID: "p1", Name: "Widget"})
	if err != nil {
		t.Fatalf("first UpsertProduct() error = %v", err)
	}

	second, err := st.UpsertProduct(&models.Product{
		WebflowID: "p1",
		Name:      "Widget v2",
		Price:     decimal.NullDecimal{Decimal: decimal.NewFromFloat(19.99), Valid: true},
	})
	if err != nil {
		t.Fatalf("second UpsertProduct() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("surrogate id changed: %s vs %s", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 1 {
		t.Errorf("product rows = %d, want 1", count)
	}

	var stored models.Product
	db.Where("webflow_id = ?", "p1").First(&stored)
	if stored.Name != "Widget v2" {
		t.Errorf("Name = %q, derived fields must be overwritten", stored.Name)
	}
	if !stored.Price.Valid || !stored.Price.Decimal.Equal(decimal.NewFromFloat(19.99)) {
		t.Errorf("Price = %+v, want 19.99", stored.Price)
	}
}

func TestUpsertVariantsIdempotent(t *testing.T) {
	st, db := setupTestStore(t)

	variants := []models.ProductVariant{
		{WebflowSKUID: "s1", WebflowProductID: "p1", ProductID: "surrogate", SKU: "W-1"},
		{WebflowSKUID: "s2", WebflowProductID: "p1", ProductID: "surrogate", SKU: "W-2"},
	}
	if err := st.UpsertVariants(variants); err != nil {
		t.Fatalf("UpsertVariants() error = %v", err)
	}

	updated := []models.ProductVariant{
		{WebflowSKUID: "s1", WebflowProductID: "p1", ProductID: "surrogate", SKU: "W-1-NEW"},
	}
	if err := st.UpsertVariants(updated); err != nil {
		t.Fatalf("UpsertVariants() update error = %v", err)
	}

	var count int64
	db.Model(&models.ProductVariant{}).Count(&count)
	if count != 2 {
		t.Errorf("variant rows = %d, want 2", count)
	}

	var stored models.ProductVariant
	db.Where("webflow_sku_id = ?", "s1").First(&stored)
	if stored.SKU != "W-1-NEW" {
		t.Errorf("SKU = %q, want W-1-NEW", stored.SKU)
	}
}

func TestUpsertVariantsEmpty(t *testing.T) {
	st, _ := setupTestStore(t)
	if err := st.UpsertVariants(nil); err != nil {
		t.Errorf("UpsertVariants(nil) error = %v", err)
	}
}

func TestUpsertOptionsCompositeKey(t *testing.T) {
	st, db := setupTestStore(t)

	if err := st.UpsertOptions([]models.OptionLookup{
		{FieldSlug: "manufacturer", OptionID: "opt1", Name: "Acme"},
		{FieldSlug: "tags", OptionID: "opt1", Name: "New"},
	}); err != nil {
		t.Fatalf("UpsertOptions() error = %v", err)
	}

	// Same option id under a different field is a distinct row
	var count int64
	db.Model(&models.OptionLookup{}).Count(&count)
	if count != 2 {
		t.Errorf("lookup rows = %d, want 2", count)
	}

	if err := st.UpsertOptions([]models.OptionLookup{
		{FieldSlug: "manufacturer", OptionID: "opt1", Name: "Acme Corp"},
	}); err != nil {
		t.Fatalf("UpsertOptions() update error = %v", err)
	}

	db.Model(&models.OptionLookup{}).Count(&count)
	if count != 2 {
		t.Errorf("lookup rows = %d after re-upsert, want 2", count)
	}

	var stored models.OptionLookup
	db.Where("field_slug = ? AND option_id = ?", "manufacturer", "opt1").First(&stored)
	if stored.Name != "Acme Corp" {
		t.Errorf("Name = %q, want Acme Corp", stored.Name)
	}
}

func TestInsertMessage(t *testing.T) {
	st, db := setupTestStore(t)

	if err := st.InsertMessage(&models.Message{SessionID: "sess1", Role: "user", Content: "hi"}); err != nil {
		t.Fatalf("InsertMessage() error = %v", err)
	}

	var count int64
	db.Model(&models.Message{}).Where("session_id = ?", "sess1").Count(&count)
	if count != 1 {
		t.Errorf("message rows = %d, want 1", count)
	}
}

func TestFormatVector(t *testing.T) {
	got := FormatVector([]float32{0.5, -1, 2})
	if got != "[0.5,-1,2]" {
		t.Errorf("FormatVector() = %q", got)
	}
	if got := FormatVector(nil); got != "[]" {
		t.Errorf("FormatVector(nil) = %q", got)
	}
}
