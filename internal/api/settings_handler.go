package api

import (
	"io"
	"net/http"

	"github.com/DingzixuanCYEZ/CCB/internal/scheduler"
	"github.com/DingzixuanCYEZ/CCB/internal/settings"
)

type SettingsResponse struct {
	Settings settings.Settings `json:"settings"`
	Warnings []string          `json:"warnings,omitempty"`
}

// getSettings returns the scheduling settings.
// @Summary      Get settings
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  SettingsResponse
// @Router       /settings [get]
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SettingsResponse{Settings: h.svc.Settings()})
}

// updateSettings replaces the settings. Invalid fields fall back to their
// defaults and are listed in warnings; the request still succeeds.
// @Summary      Update settings
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        body  body      settings.Settings  true  "Settings, every field optional"
// @Success      200   {object}  SettingsResponse
// @Failure      500   {object}  map[string]string
// @Router       /settings [put]
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	cfg, warnings, err := h.svc.UpdateSettings(r.Context(), body)
	if h.handleStoreError(w, err, "settings") {
		return
	}
	respondJSON(w, http.StatusOK, SettingsResponse{Settings: cfg, Warnings: warnings})
}

// listProfiles returns the reward profile table.
// @Summary      List reward profiles
// @Tags         Settings
// @Produce      json
// @Success      200  {array}  scheduler.RewardProfile
// @Router       /profiles [get]
func (h *Handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, scheduler.Profiles())
}

// getStats returns every aggregate index per subject.
// @Summary      Aggregate statistics
// @Description  Proficiency, quality, quantity and persistence per subject.
// @Tags         Stats
// @Produce      json
// @Success      200  {array}   metrics.Summary
// @Failure      500  {object}  map[string]string
// @Router       /stats [get]
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if h.handleStoreError(w, err, "stats") {
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
