package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/staffdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/staffdash/internal/logger"
)

type reloadResponse struct {
	Status string `json:"status"`
}

// Reload triggers a manual reload of the roster
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual roster reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, reloadResponse{Status: "reload triggered"})
		default:
			d.Logger.Warn("roster reload already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "reload already in progress, please wait")
		}
	}
}
