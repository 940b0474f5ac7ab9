// Package main serves stored HIPE evaluation runs over HTTP.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/api/router"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/api/server"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage/factory"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage/pg"
)

const connectTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sCfg, err := server.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	storeCfg, err := factory.LoadEnv()
	if err != nil {
		logger.Error("Failed to load storage configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	store, pool, err := factory.NewPGStore(ctx, *storeCfg, logger)
	cancel()
	if err != nil {
		logger.Error("Failed to connect to result store", "error", err)
		os.Exit(1)
	}

	s := server.New(sCfg, pg.NewHealthChecker(pool), logger).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "HIPE results API is running")
	})

	router.NewResultsRouter(s.Echo, store).Bind()

	go func() {
		<-s.ShutdownSignal()
		logger.Info("Shutdown started, closing result store")
		store.Close()
	}()

	if err := s.Start(); err != nil {
		logger.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
