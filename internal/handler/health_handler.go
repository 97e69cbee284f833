package handlers

import "net/http"

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
		return
	}

	if err := h.DB.HealthCheck(); err != nil {
		h.Logger.Error().Err(err).Msg("health check failed")
		writeJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
