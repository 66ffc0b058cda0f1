package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.etcd.io/bbolt"

	"github.com/alorle/smogwatch/internal/adapter/driven"
	"github.com/alorle/smogwatch/internal/adapter/driver"
	"github.com/alorle/smogwatch/internal/api"
	"github.com/alorle/smogwatch/internal/application"
	"github.com/alorle/smogwatch/internal/config"
	"github.com/alorle/smogwatch/internal/ui"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg, os.Stdout)

	logger.Info("starting smogwatch",
		"port", cfg.Port,
		"openaq_url", cfg.OpenAQURL,
		"wikipedia_url", cfg.WikipediaURL,
		"db_path", cfg.DBPath,
		"log_level", cfg.SlogLevel().String(),
		"cache_ttl", cfg.CacheTTL,
	)

	db, err := bbolt.Open(cfg.DBPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	reportRepo, err := driven.NewReportBoltDBRepository(db)
	if err != nil {
		return fmt.Errorf("failed to create report repository: %w", err)
	}

	swagger, err := api.GetSwagger()
	if err != nil {
		return err
	}

	source, encyclopedia := newUpstreams(cfg, logger)

	pollutionService := newPollutionService(cfg, source, encyclopedia, reportRepo, logger)
	healthService := application.NewHealthService(reportRepo, source, encyclopedia)

	router := driver.NewRouter(driver.Routes{
		Page:         driver.NewPageHTTPHandler(pollutionService, logger),
		API:          driver.NewAPIHTTPHandler(pollutionService, swagger, logger),
		Health:       driver.NewHealthHTTPHandler(healthService),
		Static:       driver.NewStaticHandler(ui.StaticFS()),
		Metrics:      promhttp.Handler(),
		APIValidator: api.RequestValidator(swagger),
	}, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.UpstreamTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("shutdown signal received, shutting down gracefully")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
	return nil
}
