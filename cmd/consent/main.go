// Package main runs the consent service with an in-memory repository.
// All data is lost when the server stops.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/tendant/simple-consent/pkg/config"
	"github.com/tendant/simple-consent/pkg/consent"
	"github.com/tendant/simple-consent/pkg/resulthttp"
)

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		Level:     cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	boundary := resulthttp.NewHandler(resulthttp.Options{
		ExposeMeta: cfg.ExposeMeta(),
		Logger:     logger,
	})

	service := consent.NewService(consent.NewInMemoryRepository())
	handler := consent.NewHandler(service, boundary)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(boundary.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	handler.RegisterRoutes(r)

	slog.Info("Starting consent service", "addr", cfg.Addr(), "environment", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		slog.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}
