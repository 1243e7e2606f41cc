package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnapio/tripbook/backend/internal/domain"
	"github.com/mnapio/tripbook/backend/internal/repo"
)

// reservationFixture returns a domain.Reservation for the given trip with
// sensible defaults. ConfirmationCode is freshly generated per call.
func reservationFixture(tripID int64) domain.Reservation {
	return domain.Reservation{
		TripID:           tripID,
		Name:             "Ada",
		Surname:          "Lovelace",
		Email:            "ada@example.com",
		SlotsTaken:       2,
		ConfirmationCode: uuid.New(),
	}
}

func newTestRepos(t *testing.T) (repo.TripRepo, repo.ReservationRepo) {
	t.Helper()
	tx := newTestTx(t)
	return repo.NewTripRepo(tx), repo.NewReservationRepo(tx)
}

func createTestTrip(t *testing.T, trips repo.TripRepo) domain.Trip {
	t.Helper()
	trip, err := trips.Create(context.Background(), tripFixture())
	require.NoError(t, err)
	return trip
}

func TestReservationRepo_Create(t *testing.T) {
	trips, reservations := newTestRepos(t)
	ctx := context.Background()

	trip := createTestTrip(t, trips)
	input := reservationFixture(trip.ID)

	got, err := reservations.Create(ctx, input)

	require.NoError(t, err)
	assert.Positive(t, got.ID)
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Surname, got.Surname)
	assert.Equal(t, input.Email, got.Email)
	assert.Equal(t, input.SlotsTaken, got.SlotsTaken)
	assert.Equal(t, input.ConfirmationCode, got.ConfirmationCode)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestReservationRepo_Create_MissingTrip(t *testing.T) {
	_, reservations := newTestRepos(t)
	ctx := context.Background()

	// A reservation against a trip id that does not exist hits the foreign key
	// and surfaces as ErrNotFound so callers can 404 it.
	_, err := reservations.Create(ctx, reservationFixture(999999999))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReservationRepo_ListByTripID(t *testing.T) {
	trips, reservations := newTestRepos(t)
	ctx := context.Background()

	trip := createTestTrip(t, trips)
	other := createTestTrip(t, trips)

	first := reservationFixture(trip.ID)
	second := reservationFixture(trip.ID)
	second.Name = "Grace"
	second.Surname = "Hopper"
	second.Email = "grace@example.com"
	unrelated := reservationFixture(other.ID)

	for _, res := range []domain.Reservation{first, second, unrelated} {
		_, err := reservations.Create(ctx, res)
		require.NoError(t, err)
	}

	got, err := reservations.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)

	var emails []string
	for _, res := range got {
		assert.Equal(t, trip.ID, res.TripID)
		emails = append(emails, res.Email)
	}
	assert.Contains(t, emails, first.Email)
	assert.Contains(t, emails, second.Email)
	assert.NotContains(t, emails, unrelated.Email)
}

func TestReservationRepo_ListByTripID_Empty(t *testing.T) {
	trips, reservations := newTestRepos(t)
	ctx := context.Background()

	trip := createTestTrip(t, trips)

	got, err := reservations.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	assert.Empty(t, got)
}
