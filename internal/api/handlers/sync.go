package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopchat/internal/config"
	"shopchat/internal/logger"
	"shopchat/internal/sync"
)

type SyncHandler struct {
	catalog  *sync.CatalogSyncer
	products *sync.ProductSyncer
	options  *sync.OptionSyncer
	config   *config.Config
	logger   *logger.Logger
}

func NewSyncHandler(catalog *sync.CatalogSyncer, products *sync.ProductSyncer, options *sync.OptionSyncer, cfg *config.Config, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{
		catalog:  catalog,
		products: products,
		options:  options,
		config:   cfg,
		logger:   logger,
	}
}

// SyncCatalog runs the full bulk sync. Per-item failures are reported in
// the result, not as an HTTP error.
func (h *SyncHandler) SyncCatalog(c *gin.Context) {
	result, err := h.catalog.Sync(c.Request.Context())
	if err != nil {
		h.logger.Error("Catalog sync failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"totalFound": result.TotalFound,
		"synced":     result.Synced,
		"failed":     result.Failed,
		"errors":     result.Errors,
	})
}

func (h *SyncHandler) SyncProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "product id is required"})
		return
	}

	result, err := h.products.Sync(id)
	if err != nil {
		h.logger.Error("Product sync failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "result": result})
}

func (h *SyncHandler) SyncOptions(c *gin.Context) {
	var request struct {
		CollectionID string   `json:"collection_id"`
		Fields       []string `json:"fields"`
	}

	// Body is optional; the configured collection is the default.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}

	collectionID := request.CollectionID
	if collectionID == "" {
		collectionID = h.config.WebflowCollectionID
	}
	if collectionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "collection id is required"})
		return
	}

	result, err := h.options.Sync(collectionID, request.Fields)
	if err != nil {
		h.logger.Error("Option sync failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "synced": result.Synced})
}
