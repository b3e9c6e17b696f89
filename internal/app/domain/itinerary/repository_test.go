package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

func newRepoTest(t *testing.T) (pgxmock.PgxPoolIface, *PostgresTripsRepository) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return mockPool, NewPostgresTripsRepository(mockPool, zap.NewNop())
}

func TestTripsRepository_Save(t *testing.T) {
	mockPool, repo := newRepoTest(t)

	userID := uuid.New()
	tripID := uuid.New()
	now := time.Now()
	it := *parisItinerary()

	mockPool.ExpectQuery("INSERT INTO trips").
		WithArgs(userID, it.Destination, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(tripID, now))

	trip, err := repo.Save(context.Background(), userID, it)

	require.NoError(t, err)
	assert.Equal(t, tripID, trip.ID)
	assert.Equal(t, userID, trip.UserID)
	assert.Equal(t, "Paris", trip.Itinerary.Destination)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestTripsRepository_ListByUser(t *testing.T) {
	mockPool, repo := newRepoTest(t)

	userID := uuid.New()
	it := *parisItinerary()
	payload, err := json.Marshal(it)
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"id", "user_id", "itinerary", "created_at"}).
		AddRow(uuid.New(), userID, payload, time.Now())
	mockPool.ExpectQuery("SELECT id, user_id, itinerary, created_at FROM trips").
		WithArgs(userID).
		WillReturnRows(rows)

	trips, err := repo.ListByUser(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Paris", trips[0].Itinerary.Destination)
	assert.Len(t, trips[0].Itinerary.Days, 3)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestTripsRepository_ListByUser_Empty(t *testing.T) {
	mockPool, repo := newRepoTest(t)

	userID := uuid.New()
	mockPool.ExpectQuery("SELECT id, user_id, itinerary, created_at FROM trips").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "itinerary", "created_at"}))

	trips, err := repo.ListByUser(context.Background(), userID)

	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestTripsRepository_GetByID_NotFound(t *testing.T) {
	mockPool, repo := newRepoTest(t)

	userID := uuid.New()
	tripID := uuid.New()
	mockPool.ExpectQuery("SELECT id, user_id, itinerary, created_at FROM trips").
		WithArgs(tripID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "itinerary", "created_at"}))

	trip, err := repo.GetByID(context.Background(), userID, tripID)

	assert.Nil(t, trip)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestTripsRepository_Delete(t *testing.T) {
	mockPool, repo := newRepoTest(t)

	userID := uuid.New()
	tripID := uuid.New()
	mockPool.ExpectExec("DELETE FROM trips").
		WithArgs(tripID, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, repo.Delete(context.Background(), userID, tripID))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestTripsRepository_Delete_NotOwned(t *testing.T) {
	mockPool, repo := newRepoTest(t)

	userID := uuid.New()
	tripID := uuid.New()
	mockPool.ExpectExec("DELETE FROM trips").
		WithArgs(tripID, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), userID, tripID)

	assert.True(t, errors.Is(err, models.ErrNotFound))
}
