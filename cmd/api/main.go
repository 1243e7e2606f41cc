// Package main is the entry point for the trip booking API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/mnapio/tripbook/backend/internal/clock"
	"github.com/mnapio/tripbook/backend/internal/config"
	"github.com/mnapio/tripbook/backend/internal/handler"
	"github.com/mnapio/tripbook/backend/internal/middleware"
	"github.com/mnapio/tripbook/backend/internal/notify"
	"github.com/mnapio/tripbook/backend/internal/repo"
	"github.com/mnapio/tripbook/backend/internal/service"
	"github.com/mnapio/tripbook/backend/migrations"
)

// maxBodySize caps booking request bodies. The largest legitimate body is a
// short contact form, so 64 KiB leaves plenty of headroom.
const maxBodySize = 64 << 10

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger. JSON handler writes
	// machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Migrations -------------------------------------------------------
	// goose drives database/sql, so the schema is applied over a short-lived
	// stdlib connection before the pgx pool opens.
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelMigrate()
	if err := applyMigrations(migrateCtx, cfg.DatabaseURL); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database schema up to date")

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Notifications ----------------------------------------------------
	var notifier service.ReservationNotifier = notify.Noop{}
	if cfg.EventsEnabled() {
		kafkaPub, err := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			slog.Error("failed to create kafka publisher", "error", err)
			os.Exit(1)
		}
		defer kafkaPub.Close()
		notifier = kafkaPub
		slog.Info("reservation events enabled", "topic", cfg.KafkaTopic)
	}

	// --- Services ---------------------------------------------------------
	trips := repo.NewTripRepo(pool)
	reservations := repo.NewReservationRepo(pool)
	txRunner := repo.NewTxRunner(pool)

	queries := service.NewQueryService(trips, reservations, clock.NewSystem())
	bookings := service.NewBookingService(trips, reservations, txRunner, notifier)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body size limit. Recoverer catches panics and returns HTTP 500
	// instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	srv := handler.NewServer(queries, bookings)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// applyMigrations opens a throwaway database/sql connection and brings the
// schema up to date.
func applyMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return migrations.Apply(ctx, db)
}
