package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/energy-keeper/internal/config"
	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/internal/utils"
	"github.com/MKhiriev/energy-keeper/models"
)

type httpAuthAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPAuthAdapter constructs the REST implementation of [AuthAdapter].
// The base URL is normalised: a missing scheme defaults to http and trailing
// slashes are dropped.
func NewHTTPAuthAdapter(cfg *config.ClientConfig, logger *logger.Logger) (AuthAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpAuthAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAuthAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.Session, error) {
	var session models.Session

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&session).
		Post("/api/user/register")
	if err != nil {
		return models.Session{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	h.logger.Debug().Str("user_id", session.ID).Msg("registered")
	return session, nil
}

func (h *httpAuthAdapter) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	var session models.Session

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&session).
		Post("/api/user/login")
	if err != nil {
		return models.Session{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	h.logger.Debug().Str("user_id", session.ID).Msg("logged in")
	return session, nil
}

func (h *httpAuthAdapter) Logout(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/api/user/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAuthAdapter) Session(ctx context.Context) (models.Session, bool, error) {
	var session models.Session

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&session).
		Get("/api/user/session")
	if err != nil {
		return models.Session{}, false, fmt.Errorf("session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, false, err
	}
	if resp.StatusCode() == http.StatusNoContent {
		return models.Session{}, false, nil
	}

	return session, true, nil
}

func (h *httpAuthAdapter) Prefix(ctx context.Context) (string, error) {
	var prefix models.PrefixResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&prefix).
		Get("/api/user/prefix")
	if err != nil {
		return "", fmt.Errorf("prefix request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return prefix.Prefix, nil
}

func (h *httpAuthAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}
