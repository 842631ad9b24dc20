package postgres

import (
	"context"
	"database/sql"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	uuid "github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/repository"
)

// SpotRepository implements port.SpotRepository using PostgreSQL.
type SpotRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewSpotRepository wires a PostgreSQL-backed fishing spot repository.
func NewSpotRepository(pool *pgxpool.Pool) *SpotRepository {
	return &SpotRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *SpotRepository) WithTx(tx pgx.Tx) *SpotRepository {
	if tx == nil {
		return r
	}
	return &SpotRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new fishing spot row and returns the assigned identifier.
func (r *SpotRepository) Create(ctx context.Context, s domain.FishingSpot) (string, error) {
	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}

	var lat, lng any
	if s.Coordinates != nil {
		lat = s.Coordinates.Lat
		lng = s.Coordinates.Lng
	}

	query := r.builder.Insert("fishlog.fishing_spots").
		Columns(
			"id",
			"owner_id",
			"name",
			"location",
			"rating",
			"distance",
			"fish_types",
			"last_visit",
			"catches",
			"image",
			"is_active",
			"lat",
			"lng",
			"created_at",
		).
		Values(
			id,
			s.OwnerID,
			s.Name,
			s.Location,
			s.Rating,
			s.Distance,
			s.FishTypes,
			s.LastVisit,
			s.Catches,
			s.Image,
			s.IsActive,
			lat,
			lng,
			s.CreatedAt,
		)

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert spot sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, sql, args...); err != nil {
		return "", fmt.Errorf("insert spot: %w", err)
	}

	return id, nil
}

// ListByOwner returns the owner's fishing spots ordered by creation time, newest first.
func (r *SpotRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.FishingSpot, error) {
	stmt, args, err := r.builder.
		Select(
			"id",
			"owner_id",
			"name",
			"location",
			"rating",
			"distance",
			"fish_types",
			"last_visit",
			"catches",
			"image",
			"is_active",
			"lat",
			"lng",
			"created_at",
		).
		From("fishlog.fishing_spots").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select spots sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select spots: %w", err)
	}
	defer rows.Close()

	var spots []domain.FishingSpot
	for rows.Next() {
		var (
			s        domain.FishingSpot
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(
			&s.ID,
			&s.OwnerID,
			&s.Name,
			&s.Location,
			&s.Rating,
			&s.Distance,
			&s.FishTypes,
			&s.LastVisit,
			&s.Catches,
			&s.Image,
			&s.IsActive,
			&lat,
			&lng,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan spot: %w", err)
		}
		if lat.Valid && lng.Valid {
			s.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate spots: %w", err)
	}

	return spots, nil
}

// Update applies the non-nil patch fields to a fishing spot row. The owner
// id is part of the match, so another user's row reads as not found.
func (r *SpotRepository) Update(ctx context.Context, ownerID, id string, patch domain.SpotPatch) error {
	update := r.builder.Update("fishlog.fishing_spots").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID})

	changed := false
	if patch.Name != nil {
		update = update.Set("name", *patch.Name)
		changed = true
	}
	if patch.Location != nil {
		update = update.Set("location", *patch.Location)
		changed = true
	}
	if patch.Rating != nil {
		update = update.Set("rating", *patch.Rating)
		changed = true
	}
	if patch.Distance != nil {
		update = update.Set("distance", *patch.Distance)
		changed = true
	}
	if patch.FishTypes != nil {
		update = update.Set("fish_types", *patch.FishTypes)
		changed = true
	}
	if patch.LastVisit != nil {
		update = update.Set("last_visit", *patch.LastVisit)
		changed = true
	}
	if patch.Catches != nil {
		update = update.Set("catches", *patch.Catches)
		changed = true
	}
	if patch.Image != nil {
		update = update.Set("image", *patch.Image)
		changed = true
	}
	if patch.IsActive != nil {
		update = update.Set("is_active", *patch.IsActive)
		changed = true
	}
	if patch.Coordinates != nil {
		update = update.Set("lat", patch.Coordinates.Lat).Set("lng", patch.Coordinates.Lng)
		changed = true
	}
	if !changed {
		return nil
	}

	stmt, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build update spot sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update spot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a fishing spot row owned by ownerID.
func (r *SpotRepository) Delete(ctx context.Context, ownerID, id string) error {
	stmt, args, err := r.builder.Delete("fishlog.fishing_spots").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete spot sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete spot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
