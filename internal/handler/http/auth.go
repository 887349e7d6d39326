package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/internal/utils"
	"github.com/MKhiriev/energy-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, ErrInvalidJSON)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("invalid registration data provided")
		writeError(w, err)
		return
	}

	session, err := h.services.AuthService.RegisterUser(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		log.Err(err).Msg("registration failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, ErrInvalidJSON)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("invalid login data provided")
		writeError(w, err)
		return
	}

	session, err := h.services.AuthService.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		log.Err(err).Msg("login failed")
		writeError(w, err)
		return
	}

	log.Debug().Str("user_id", session.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AuthService.LogoutUser(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("logout failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// session responds 204 when there is no current session.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	session, ok := h.services.AuthService.GetSession(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

// prefix reports the KV prefix of the current session user, "" when
// anonymous.
func (h *Handler) prefix(w http.ResponseWriter, r *http.Request) {
	var userID string
	if session, ok := h.services.AuthService.GetSession(r.Context()); ok {
		userID = session.ID
	}

	utils.WriteJSON(w, models.PrefixResponse{Prefix: h.services.AuthService.UserKVPrefix(userID)}, http.StatusOK)
}
