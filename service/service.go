package service

import (
	"github.com/sand20man/bookstore/config"
	"github.com/sand20man/bookstore/internal/jsonlog"
	"github.com/sand20man/bookstore/repository"
)

type Service interface {
	books
	categories
}

// service defines the app's service layer.
type service struct {
	config config.Config
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(cfg config.Config, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		logger: logger,
		repo:   repo,
	}
}
