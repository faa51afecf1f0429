// filepath: internal/httpserver/router.go
package httpserver

import (
	"docvault/internal/httpserver/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures the main router and its sub-routers.
func SetupRouter(h *handlers.Handlers, reg *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()

	// Public Endpoints
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")

	// Ingestion API. Authentication/session resolution sits in front of
	// this service; the resolved principal arrives in the X-Actor header.
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/document", h.UploadDocument).Methods("POST")
	apiRouter.HandleFunc("/documents/batch", h.UploadDocumentBatch).Methods("POST")
	apiRouter.HandleFunc("/document/verify", h.VerifyDocument).Methods("POST")
	apiRouter.HandleFunc("/stats", h.GetUploadStatistics).Methods("GET")

	return r
}
