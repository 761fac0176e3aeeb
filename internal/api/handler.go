package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/service"
	"github.com/DingzixuanCYEZ/CCB/internal/session"
	"github.com/DingzixuanCYEZ/CCB/internal/store"
)

// maxBodyBytes caps request bodies; card imports are the largest.
const maxBodyBytes = 4 << 20

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	svc    *service.StudyService
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(svc *service.StudyService, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes {"error": msg}.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

type validator interface {
	Validate() error
}

// decodeAndValidate decodes then validates the request body.
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
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	if errors.Is(err, store.ErrCorrupt) {
		h.logger.Error("corrupt record", "error", err, "entity", entity)
		respondError(w, http.StatusUnprocessableEntity, entity+" record is corrupt")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// handleSessionError maps session and service errors to HTTP statuses and
// falls back to handleStoreError.
func (h *Handler) handleSessionError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrNoSession):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, session.ErrHalfDisabled),
		errors.Is(err, card.ErrUnknownVerdict):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWrongMode),
		errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, session.ErrFinished):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrGuardActive):
		respondError(w, http.StatusTooManyRequests, err.Error())
	default:
		return h.handleStoreError(w, err, "deck")
	}
	return true
}
