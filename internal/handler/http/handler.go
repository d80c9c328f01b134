package http

import (
	"math/rand/v2"

	"github.com/MKhiriev/go-bookshelf/internal/config"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/service"
)

type Handler struct {
	services *service.Services

	// production hides stack traces from error responses.
	production bool

	// random returns a number in [0, 1). It decides the outcome of /fake-auth.
	random func() float64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		production: cfg.IsProduction(),
		random:     rand.Float64,
		logger:     logger,
	}
}
