package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

// DB is the subset of pgxpool.Pool the repository needs. Narrowed so tests
// can substitute pgxmock.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ TripsRepository = (*PostgresTripsRepository)(nil)

// TripsRepository persists saved trips, always scoped to their owner.
type TripsRepository interface {
	Save(ctx context.Context, userID uuid.UUID, it models.TripItinerary) (*models.SavedTrip, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedTrip, error)
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (*models.SavedTrip, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

type PostgresTripsRepository struct {
	db     DB
	logger *zap.Logger
	sb     sq.StatementBuilderType
}

func NewPostgresTripsRepository(db DB, logger *zap.Logger) *PostgresTripsRepository {
	return &PostgresTripsRepository{
		db:     db,
		logger: logger,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresTripsRepository) Save(ctx context.Context, userID uuid.UUID, it models.TripItinerary) (*models.SavedTrip, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "Save")
	defer span.End()

	payload, err := json.Marshal(it)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to encode itinerary: %w", err)
	}

	query, args, err := r.sb.Insert("trips").
		Columns("user_id", "destination", "itinerary").
		Values(userID, it.Destination, payload).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	trip := models.SavedTrip{UserID: userID, Itinerary: it}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&trip.ID, &trip.CreatedAt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Insert failed")
		r.logger.Error("Failed to save trip", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	span.SetAttributes(attribute.String("trip.id", trip.ID.String()))
	return &trip, nil
}

func (r *PostgresTripsRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedTrip, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "ListByUser")
	defer span.End()

	query, args, err := r.sb.Select("id", "user_id", "itinerary", "created_at").
		From("trips").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("Failed to list trips", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	trips := make([]models.SavedTrip, 0)
	for rows.Next() {
		var trip models.SavedTrip
		var payload []byte
		if err := rows.Scan(&trip.ID, &trip.UserID, &payload, &trip.CreatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan trip row: %w", err)
		}
		if err := json.Unmarshal(payload, &trip.Itinerary); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to decode stored itinerary %s: %w", trip.ID, err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("trip rows iteration failed: %w", err)
	}

	span.SetAttributes(attribute.Int("trips.count", len(trips)))
	return trips, nil
}

func (r *PostgresTripsRepository) GetByID(ctx context.Context, userID, tripID uuid.UUID) (*models.SavedTrip, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "GetByID")
	defer span.End()

	query, args, err := r.sb.Select("id", "user_id", "itinerary", "created_at").
		From("trips").
		Where(sq.Eq{"id": tripID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get query: %w", err)
	}

	var trip models.SavedTrip
	var payload []byte
	err = r.db.QueryRow(ctx, query, args...).Scan(&trip.ID, &trip.UserID, &payload, &trip.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("trip %s: %w", tripID, models.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to fetch trip: %w", err)
	}
	if err := json.Unmarshal(payload, &trip.Itinerary); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to decode stored itinerary %s: %w", trip.ID, err)
	}

	return &trip, nil
}

func (r *PostgresTripsRepository) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "Delete")
	defer span.End()

	query, args, err := r.sb.Delete("trips").
		Where(sq.Eq{"id": tripID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("Failed to delete trip", zap.Error(err), zap.String("tripID", tripID.String()))
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trip %s: %w", tripID, models.ErrNotFound)
	}
	return nil
}
