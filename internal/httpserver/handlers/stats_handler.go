// filepath: internal/httpserver/handlers/stats_handler.go
package handlers

import (
	"net/http"

	"docvault/internal/logging"
)

// GetUploadStatistics returns counts and total bytes for the staging area
// and the final store.
func (h *Handlers) GetUploadStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Upload.GetUploadStatistics()
	if err != nil {
		logging.Log.Errorf("Failed to compute upload statistics: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to compute upload statistics.")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
