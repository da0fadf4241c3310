package main

import (
	"log"

	"shopchat/internal/api"
	"shopchat/internal/config"
	"shopchat/internal/database"
	"shopchat/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize API server
	server := api.New(cfg, logger, db)

	// Start server
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
