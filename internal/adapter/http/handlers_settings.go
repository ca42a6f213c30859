package adapthttp

import (
	"errors"
	"net/http"

	"weighttracker/internal/app"
)

func (s *Server) handleDarkModeGet(w http.ResponseWriter, r *http.Request) {
	on, err := s.settings.DarkMode(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"enabled": on})
}

func (s *Server) handleDarkModePut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.settings.SetDarkMode(r.Context(), body.Enabled); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"enabled": body.Enabled})
}

func (s *Server) handleAlertsGet(w http.ResponseWriter, r *http.Request) {
	as, err := s.settings.AlertSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, as)
}

func (s *Server) handleAlertsPut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool   `json:"enabled"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	err := s.settings.SaveAlertSettings(r.Context(), body.Enabled, body.Phone, body.Message)
	if errors.Is(err, app.ErrPhoneRequired) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	as, err := s.settings.AlertSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, as)
}
