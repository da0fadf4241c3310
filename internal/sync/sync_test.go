package sync

import (
	"encoding/json"
	"net/http"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shopchat/internal/logger"
	"shopchat/internal/models"
	"shopchat/internal/store"
)

const testSiteID = "site1"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.OptionLookup{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(setupTestDB(t))
}

func testLogger() *logger.Logger {
	return logger.New("error")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// testItem builds a vendor product+skus response body.
func testItem(id string, fieldData map[string]interface{}, skus ...map[string]interface{}) map[string]interface{} {
	if fieldData == nil {
		fieldData = map[string]interface{}{"name": "Product " + id, "slug": "product-" + id}
	}
	if skus == nil {
		skus = []map[string]interface{}{}
	}
	return map[string]interface{}{
		"product": map[string]interface{}{"id": id, "fieldData": fieldData},
		"skus":    skus,
	}
}

func testSKU(id string, fieldData map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"id": id, "fieldData": fieldData}
}
