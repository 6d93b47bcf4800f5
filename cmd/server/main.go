package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/resbrowse/resbrowse/internal/api"
	"github.com/resbrowse/resbrowse/internal/assembly"
	"github.com/resbrowse/resbrowse/internal/classify"
	"github.com/resbrowse/resbrowse/internal/config"
	"github.com/resbrowse/resbrowse/internal/export"
	"github.com/resbrowse/resbrowse/internal/tree"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the module under inspection.
	module, err := assembly.OpenBundle(cfg.ModulePath)
	if err != nil {
		log.Error("failed to open module", "path", cfg.ModulePath, "error", err)
		os.Exit(1)
	}
	defer module.Close()

	treeCfg := tree.Config{
		Classifier: classify.Config{
			PrefixSize:         cfg.ClassifierPrefixSize,
			PrintableThreshold: cfg.PrintableThresholdPct,
		},
		InlineCeiling: cfg.InlineCeilingBytes,
	}

	// Single-owner dispatch for all tree access.
	loop := tree.NewLoop(cfg.DispatchQueueSize)
	loop.Start(ctx)

	root := tree.NewListNode(module, treeCfg, loop, log)

	store, err := newExportStore(cfg)
	if err != nil {
		log.Error("failed to configure export store", "backend", cfg.ExportBackend, "error", err)
		os.Exit(1)
	}

	srv, err := api.NewServer(root, treeCfg, store, log, cfg)
	if err != nil {
		log.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		loop.Stop()
	}()

	log.Info("starting resbrowse", "port", cfg.Port, "module", cfg.ModulePath)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newExportStore(cfg config.Config) (export.Store, error) {
	if cfg.ExportBackend == "s3" {
		return export.NewS3Store(export.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			UseSSL:    cfg.S3UseSSL,
		})
	}
	return &export.DirStore{Dir: cfg.ExportDir}, nil
}
