package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnapio/tripbook/backend/internal/domain"
	"github.com/mnapio/tripbook/backend/internal/service"
)

func validTrip() domain.Trip {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		Name:           "Middle-earth",
		Price:          349.50,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 14),
		SlotsAvailable: 100,
	}
}

func TestTripService_Create(t *testing.T) {
	trips := &mockTripRepo{
		createFn: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			trip.ID = 1
			return trip, nil
		},
	}
	svc := service.NewTripService(trips)

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Middle-earth", got.Name)
}

func TestTripService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(trip *domain.Trip)
		field  string
	}{
		{
			name:   "empty name",
			mutate: func(trip *domain.Trip) { trip.Name = "" },
			field:  "name",
		},
		{
			name:   "whitespace name",
			mutate: func(trip *domain.Trip) { trip.Name = "   " },
			field:  "name",
		},
		{
			name:   "negative price",
			mutate: func(trip *domain.Trip) { trip.Price = -1 },
			field:  "price",
		},
		{
			name:   "negative capacity",
			mutate: func(trip *domain.Trip) { trip.SlotsAvailable = -5 },
			field:  "slots_available",
		},
		{
			name:   "missing dates",
			mutate: func(trip *domain.Trip) { trip.StartDate, trip.EndDate = time.Time{}, time.Time{} },
			field:  "start_date",
		},
		{
			name:   "end before start",
			mutate: func(trip *domain.Trip) { trip.EndDate = trip.StartDate.AddDate(0, 0, -1) },
			field:  "end_date",
		},
		{
			name:   "end equal to start",
			mutate: func(trip *domain.Trip) { trip.EndDate = trip.StartDate },
			field:  "end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			trips := &mockTripRepo{
				createFn: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
					created = true
					return trip, nil
				},
			}
			svc := service.NewTripService(trips)

			trip := validTrip()
			tt.mutate(&trip)

			_, err := svc.Create(context.Background(), trip)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)

			assert.False(t, created, "invalid trip must not reach the repo")
		})
	}
}

// Different time zones, same chronological order: a start date that precedes
// the end date chronologically is valid regardless of zone offsets.
func TestTripService_Create_CrossZoneDates(t *testing.T) {
	trips := &mockTripRepo{
		createFn: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			return trip, nil
		},
	}
	svc := service.NewTripService(trips)

	trip := validTrip()
	trip.StartDate = time.Date(2026, 10, 1, 23, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	trip.EndDate = time.Date(2026, 10, 2, 5, 0, 0, 0, time.UTC) // 1h later chronologically

	_, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
}
