// TicketBot - licensed ticket-search Telegram bot
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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/anonm/ticketbot/internal/api"
	"github.com/anonm/ticketbot/internal/bot"
	"github.com/anonm/ticketbot/internal/config"
	"github.com/anonm/ticketbot/internal/license"
	"github.com/anonm/ticketbot/internal/middleware"
	"github.com/anonm/ticketbot/internal/pagination"
	"github.com/anonm/ticketbot/internal/session"
	"github.com/anonm/ticketbot/internal/store"
	"github.com/anonm/ticketbot/internal/telegram"
	"github.com/anonm/ticketbot/internal/ticketbox"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting bot", "port", cfg.Port, "session_ttl", cfg.SessionTTL)

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	tg := telegram.NewClient(cfg.TelegramAPIURL, cfg.BotToken)
	sessions := session.NewStore()

	gate := license.NewGate(license.Config{
		BaseURL:        cfg.LicenseAPIURL,
		ProductLabel:   cfg.ProductLabel,
		VersionLabel:   cfg.VersionLabel,
		ArtifactPath:   cfg.ArtifactPath,
		SupportContact: cfg.SupportContact,
	}, tg)

	engine := pagination.NewEngine(tg)
	search := ticketbox.NewClient(cfg.SearchAPIURL, cfg.SearchLimit)
	dispatcher := bot.NewDispatcher(tg, sessions, gate, engine, search, repo, cfg.SupportContact)

	// Setup status router.
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	statusHandler := api.NewHandler(repo, sessions)
	statusHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Evict idle sessions and prune old history on the same sweep cadence.
	session.StartTTLWorker(ctx, sessions, repo, cfg.SessionTTL, nil)

	// Start status server.
	go func() {
		slog.Info("Status server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Status server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Start polling loop.
	go func() {
		slog.Info("Bot polling started")
		if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Bot polling stopped", "error", err)
			stop()
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Status server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Bot stopped successfully")
}
