// filepath: internal/httpserver/handlers/main.go
package handlers

import (
	"net/http"

	"docvault/internal/config"
	"docvault/internal/models"
	"docvault/internal/services"
)

// Handlers provides a struct to hold shared dependencies for API handlers.
type Handlers struct {
	// --- Depend on interfaces, not concrete structs ---
	Upload  services.UploadService
	Auditor services.Auditor

	Cfg  *config.Config
	Info models.Info
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(upload services.UploadService, auditor services.Auditor, cfg *config.Config, info models.Info) *Handlers {
	return &Handlers{
		Upload:  upload,
		Auditor: auditor,
		Cfg:     cfg,
		Info:    info,
	}
}

// actor resolves the requesting principal for audit logging. Session
// resolution lives in front of this service; it forwards the identity in a
// header.
func actor(r *http.Request) string {
	if v := r.Header.Get("X-Actor"); v != "" {
		return v
	}
	return "anonymous"
}
