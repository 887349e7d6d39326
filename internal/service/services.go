package service

import (
	"github.com/MKhiriev/energy-keeper/internal/config"
	"github.com/MKhiriev/energy-keeper/internal/crypto"
	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/internal/store"
	"github.com/MKhiriev/energy-keeper/internal/utils"
)

type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(repositories *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: NewAuthService(
			repositories.UserRepository,
			repositories.SessionRepository,
			crypto.NewPBKDF2Hasher(),
			utils.NewUUIDGenerator(),
			cfg.App,
			logger,
		),
		AppInfoService: appInfoService,
	}, nil
}
