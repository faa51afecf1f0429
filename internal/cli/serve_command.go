// filepath: internal/cli/serve_command.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docvault/internal/audit"
	"docvault/internal/config"
	"docvault/internal/httpserver"
	"docvault/internal/httpserver/handlers"
	"docvault/internal/logging"
	"docvault/internal/metrics"
	"docvault/internal/models"
	"docvault/internal/security"
	"docvault/internal/services"
	"docvault/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type ServeOptions struct {
	Host         string
	Port         int
	MaxUpload    string
	AuditEnabled bool
}

func NewServeCommand(globalOptions *GlobalOptions) *cobra.Command {
	serveOptions := &ServeOptions{}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the ingestion server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(globalOptions, serveOptions)
		},
	}

	serveOptions.registerFlags(serveCmd)

	return serveCmd
}

func (options *ServeOptions) registerFlags(cmd *cobra.Command) {
	// flags for the serve command only
	cmd.Flags().StringVar(&options.Host, "host", "", "Host for the HTTP server. (Env: DOCVAULT_HOST)")
	cmd.Flags().IntVar(&options.Port, "port", 0, "Port for the HTTP server. (Env: DOCVAULT_PORT)")
	cmd.Flags().StringVar(&options.MaxUpload, "max-upload", "", "Max size for uploads (e.g. '100MB'). (Env: DOCVAULT_MAX_UPLOAD_SIZE)")
	cmd.Flags().BoolVar(&options.AuditEnabled, "audit-enabled", false, "Enable detailed audit logging. (Env: DOCVAULT_AUDIT_ENABLED=true)")
}

func serve(globalOptions *GlobalOptions, serveOptions *ServeOptions) error {
	cfg, err := loadConfig(globalOptions)
	if err != nil {
		return err
	}

	// CLI flags win over file and environment.
	if serveOptions.Host != "" {
		cfg.Server.Host = serveOptions.Host
	}
	if serveOptions.Port != 0 {
		cfg.Server.Port = serveOptions.Port
	}
	if serveOptions.MaxUpload != "" {
		cfg.Server.MaxUploadSize = serveOptions.MaxUpload
	}
	if serveOptions.AuditEnabled {
		cfg.Logging.AuditEnabled = true
	}

	if err := finalizeConfig(cfg); err != nil {
		return err
	}

	srv, reaper, err := buildServer(cfg)
	if err != nil {
		return err
	}

	reaper.Start()

	go func() {
		logging.Log.Infof("DocVault %s listening on %s.", Version, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.Errorf("HTTP server error: %v", err)
		}
	}()

	// Block until a shutdown signal arrives.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logging.Log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Warnf("HTTP server shutdown: %v", err)
	}

	// Await the reaper so no sweep is cut off mid-delete.
	reaper.Stop()
	logging.Log.Info("Shutdown complete.")
	return nil
}

// buildServer wires the ingestion pipeline and the HTTP surface.
func buildServer(cfg *config.Config) (*http.Server, *storage.Reaper, error) {
	staging, err := storage.NewStaging(cfg.Storage.StagingRoot)
	if err != nil {
		return nil, nil, err
	}
	allocator, err := storage.NewAllocator(cfg.Storage.FinalRoot)
	if err != nil {
		return nil, nil, err
	}

	registry := prometheus.NewRegistry()
	validator := security.NewValidator(cfg.Storage.AllowedExtensions)
	uploadService := services.NewUploadService(staging, allocator, validator, cfg.MaxUploadSizeBytes, metrics.New(registry))
	auditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled)

	info := models.Info{
		ServiceName: "docvault",
		Version:     Version,
		UptimeSince: time.Now(),
	}

	h := handlers.NewHandlers(uploadService, auditor, cfg, info)
	router := httpserver.SetupRouter(h, registry)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	reaper := storage.NewReaper(staging, cfg.RetentionAge, cfg.SweepInterval)
	return srv, reaper, nil
}
