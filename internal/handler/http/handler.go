package http

import (
	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/service"
)

type Handler struct {
	services *service.Services
	app      config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		app:      app,
		logger:   logger,
	}
}
