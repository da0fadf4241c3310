package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopchat/internal/api/handlers"
	"shopchat/internal/api/middleware"
	"shopchat/internal/config"
	"shopchat/internal/database"
	"shopchat/internal/logger"
	"shopchat/internal/services/openai"
	"shopchat/internal/services/webflow"
	"shopchat/internal/store"
	"shopchat/internal/sync"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Clients and services
	st := store.New(db.DB)
	webflowClient := webflow.NewClient(cfg.WebflowBaseURL, cfg.WebflowToken, logger)
	aiClient := openai.NewClient("", cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.ChatModel, logger)

	productSyncer := sync.NewProductSyncer(webflowClient, st, cfg.WebflowSiteID, cfg.CatalogBaseURL, logger)
	catalogSyncer := sync.NewCatalogSyncer(webflowClient, productSyncer, cfg.WebflowSiteID, logger)
	optionSyncer := sync.NewOptionSyncer(webflowClient, st, logger)

	// Handlers
	productHandler := handlers.NewProductHandler(db.DB, logger)
	syncHandler := handlers.NewSyncHandler(catalogSyncer, productSyncer, optionSyncer, cfg, logger)
	chatHandler := handlers.NewChatHandler(st, aiClient, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Products (read-only; rows come from sync)
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
		}

		// Chat
		v1.POST("/chat", chatHandler.Chat)

		// Admin: ingestion and synchronization
		admin := v1.Group("")
		admin.Use(middleware.AdminAuth(cfg.AdminToken))
		{
			admin.POST("/sync/catalog", syncHandler.SyncCatalog)
			admin.POST("/sync/products/:id", syncHandler.SyncProduct)
			admin.POST("/sync/options", syncHandler.SyncOptions)
			admin.POST("/ingest", chatHandler.Ingest)
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
