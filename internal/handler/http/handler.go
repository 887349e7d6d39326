package http

import (
	"time"

	"github.com/MKhiriev/energy-keeper/internal/config"
	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/internal/service"
	"github.com/MKhiriev/energy-keeper/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	return &Handler{
		services:       services,
		validator:      validators.NewRecordValidator(),
		requestTimeout: timeout,
		logger:         logger,
	}
}
