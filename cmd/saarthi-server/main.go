package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/krishaksaarthi/saarthi-backend/internal/api/http"
	"github.com/krishaksaarthi/saarthi-backend/internal/config"
	"github.com/krishaksaarthi/saarthi-backend/internal/news"
	"github.com/krishaksaarthi/saarthi-backend/internal/observability"
	"github.com/krishaksaarthi/saarthi-backend/internal/scheduler"
	"github.com/krishaksaarthi/saarthi-backend/internal/store"
	"github.com/krishaksaarthi/saarthi-backend/internal/weather"
	"github.com/krishaksaarthi/saarthi-backend/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	pg, err := store.NewPostgresStore(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to open database pool", "error", err)
		os.Exit(1)
	}
	defer pg.Close()

	// A missing credential is surfaced here, once, not per request. The
	// service then answers weather lookups with a configuration error.
	var provider weather.Provider
	if p, err := providers.NewTomorrowIOProvider(httpClient, cfg.TomorrowAPIKey, metrics); err != nil {
		log.Error("weather provider disabled", "error", err)
	} else {
		provider = p
	}

	service := weather.NewService(provider, pg, log, metrics)

	var newsClient news.Searcher
	if c, err := news.NewClient(cfg.NewsAPIKey, cfg.HTTPTimeout); err != nil {
		log.Warn("news proxy disabled", "error", err)
	} else {
		newsClient = c
	}
	newsSvc := news.NewService(newsClient, cfg.NewsCacheTTL, log, metrics)

	// Background refresh for tracked coordinates.
	sched := scheduler.New(cfg.Tracked, cfg.FetchInterval, service, log, metrics)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "krishak-saarthi-backend",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, service, newsSvc, pg)

	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
