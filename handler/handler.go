package handler

import (
	"github.com/sand20man/bookstore/config"
	"github.com/sand20man/bookstore/internal/jsonlog"
	"github.com/sand20man/bookstore/service"
)

// Handler defines the Handler layer.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	service service.Service
}

// New creates a new instance of Handler.
func New(cfg config.Config, logger *jsonlog.Logger, service service.Service) *Handler {
	return &Handler{
		config:  cfg,
		logger:  logger,
		service: service,
	}
}
