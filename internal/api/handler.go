// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/trigtutor/backend/internal/auth"
	"github.com/trigtutor/backend/internal/ratelimit"
	"github.com/trigtutor/backend/internal/service"
	"github.com/trigtutor/backend/internal/store"
	"github.com/trigtutor/backend/internal/tutor"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 10 << 20

// Deps lists everything the HTTP layer needs.
type Deps struct {
	Store       store.Store
	Recorder    *service.Recorder
	Analytics   *service.Analytics
	Issuer      *auth.Issuer
	Tutor       tutor.Service
	AuthLimiter ratelimit.Limiter
	Logger      *slog.Logger

	// Reported by the health route.
	Environment string
}

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store     store.Store
	recorder  *service.Recorder
	analytics *service.Analytics
	issuer    *auth.Issuer
	tutor     tutor.Service
	limiter   ratelimit.Limiter
	logger    *slog.Logger

	environment string
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(d Deps) *Handler {
	return &Handler{
		store:       d.Store,
		recorder:    d.Recorder,
		analytics:   d.Analytics,
		issuer:      d.Issuer,
		tutor:       d.Tutor,
		limiter:     d.AuthLimiter,
		logger:      d.Logger,
		environment: d.Environment,
	}
}

// Envelope is the shape of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondOK wraps data in a successful envelope.
func respondOK(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Envelope{Success: false, Error: message})
}

// decodeJSON reads the request body into v. It writes a 400 and returns
// false when the body is not valid JSON for v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

type validator interface {
	Validate() error
}

// decodeAndValidate decodes the body and runs its Validate method.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, service.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// handleTutorError maps a tutor service failure onto a response. Errors the
// service reported keep their status and message.
func (h *Handler) handleTutorError(w http.ResponseWriter, err error, fallback string) {
	var se *tutor.ServiceError
	if errors.As(err, &se) && se.Status >= 400 {
		h.logger.Warn("tutor service rejected request", "status", se.Status, "error", se.Message)
		respondError(w, se.Status, se.Message)
		return
	}
	h.logger.Error("tutor service call failed", "error", err)
	respondError(w, http.StatusBadGateway, fallback)
}
