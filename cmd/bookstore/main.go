package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sand20man/bookstore/config"
	_ "github.com/sand20man/bookstore/docs"
	"github.com/sand20man/bookstore/handler"
	"github.com/sand20man/bookstore/internal/jsonlog"
	"github.com/sand20man/bookstore/repository"
	"github.com/sand20man/bookstore/repository/postgres"
	"github.com/sand20man/bookstore/service"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title Bookstore API
// @version 1.0.0
// @description Catalog API for an online bookstore: browse, filter and sort
// @description books, manage the catalog and its category facet.
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Load environment variables from a .env file if one is present.
	_ = godotenv.Load()

	// Initialize configuration
	cfg, err := config.Decode()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, logger, repo)
	handler := handler.New(cfg, logger, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
