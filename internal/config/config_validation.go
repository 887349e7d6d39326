// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

func newValidator() *validator.Validate {
	v := validator.New()
	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	return v
}

func validateLogLevel(fl validator.FieldLevel) bool {
	_, err := zerolog.ParseLevel(strings.ToLower(fl.Field().String()))
	return err == nil
}

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if err := newValidator().Struct(cfg); err != nil {
		return classifyValidationError(err)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	switch cfg.Storage.Driver {
	case DriverSQLite, DriverPostgres:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: %s driver requires a DSN", ErrInvalidStorageConfigs, cfg.Storage.Driver)
		}
	case DriverRedis:
		if cfg.Storage.Redis.Address == "" {
			return fmt.Errorf("%w: redis driver requires an address", ErrInvalidStorageConfigs)
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.BaseURL == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidLogConfigs, err)
		}
	}

	return nil
}

// classifyValidationError maps the first failing field to the sentinel error
// of its configuration group.
func classifyValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	field := verrs[0].StructNamespace()
	switch {
	case strings.HasPrefix(field, "StructuredConfig.Storage."):
		return fmt.Errorf("%w: %v", ErrInvalidStorageConfigs, err)
	case strings.HasPrefix(field, "StructuredConfig.App."):
		return fmt.Errorf("%w: %v", ErrInvalidAppConfigs, err)
	case strings.HasPrefix(field, "StructuredConfig.Log."):
		return fmt.Errorf("%w: %v", ErrInvalidLogConfigs, err)
	default:
		return err
	}
}
