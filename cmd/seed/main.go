// Package main loads demo data into the database: four trips and two
// reservations on the first one. Intended for local development — running it
// twice fails on the unique trip names rather than duplicating data.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/mnapio/tripbook/backend/internal/config"
	"github.com/mnapio/tripbook/backend/internal/domain"
	"github.com/mnapio/tripbook/backend/internal/repo"
	"github.com/mnapio/tripbook/backend/internal/service"
	"github.com/mnapio/tripbook/backend/migrations"
)

const loremIpsum = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, " +
	"sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad " +
	"minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea " +
	"commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit " +
	"esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat " +
	"non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		slog.Error("open database", "error", err)
		os.Exit(1)
	}
	if err := migrations.Apply(ctx, sqlDB); err != nil {
		slog.Error("apply migrations", "error", err)
		os.Exit(1)
	}
	sqlDB.Close()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("create pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, pool); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed complete")
}

// seed inserts the demo trips and the two reservations on the first one.
// Reservation rows are inserted directly through the repo — this is fixture
// data, not a booking, so the demo trip keeps its full 300 open slots.
func seed(ctx context.Context, pool *pgxpool.Pool) error {
	trips := repo.NewTripRepo(pool)
	reservations := repo.NewReservationRepo(pool)
	tripSvc := service.NewTripService(trips)

	now := time.Now().UTC()

	first, err := tripSvc.Create(ctx, domain.Trip{
		Name:             "A Galaxy Far Away",
		ShortDescription: loremIpsum,
		Image:            "/images/starwars.png",
		Price:            2137,
		StartDate:        now.AddDate(0, 2, 0),
		EndDate:          now.AddDate(0, 2, 7),
		SlotsAvailable:   300,
	})
	if err != nil {
		return err
	}

	fixtures := []domain.Trip{
		{
			Name:             "Middle-earth",
			ShortDescription: loremIpsum,
			Image:            "/images/lotr.jpg",
			Price:            420,
			StartDate:        now.AddDate(0, 1, 15),
			EndDate:          now.AddDate(0, 1, 26),
			SlotsAvailable:   100,
		},
		{
			Name:             "Hogwarts",
			ShortDescription: loremIpsum,
			Image:            "/images/potter.jpg",
			Price:            69,
			StartDate:        now.AddDate(0, 1, 16),
			EndDate:          now.AddDate(0, 2, 12),
			SlotsAvailable:   200,
		},
		{
			// Already departed — exercises the upcoming-trips filter.
			Name:           "Been There Already",
			Price:          1,
			StartDate:      now.AddDate(-1, 0, 0),
			EndDate:        now.AddDate(-1, 0, 27),
			SlotsAvailable: 200,
		},
	}
	for _, trip := range fixtures {
		if _, err := tripSvc.Create(ctx, trip); err != nil {
			return err
		}
	}

	demoReservations := []domain.Reservation{
		{
			TripID:           first.ID,
			Name:             "Michał",
			Surname:          "Napiórkowski",
			Email:            "michal@gmail.com",
			SlotsTaken:       4,
			ConfirmationCode: uuid.New(),
		},
		{
			TripID:           first.ID,
			Name:             "Paweł",
			Surname:          "Strzelecki",
			Email:            "dziekan@mimuw.edu.pl",
			SlotsTaken:       12,
			ConfirmationCode: uuid.New(),
		},
	}
	for _, res := range demoReservations {
		if _, err := reservations.Create(ctx, res); err != nil {
			return err
		}
	}

	return nil
}
