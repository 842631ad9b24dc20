package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	uuid "github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/repository"
)

// CatchRepository implements port.CatchRepository using PostgreSQL.
type CatchRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewCatchRepository wires a PostgreSQL-backed catch repository.
func NewCatchRepository(pool *pgxpool.Pool) *CatchRepository {
	return &CatchRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *CatchRepository) WithTx(tx pgx.Tx) *CatchRepository {
	if tx == nil {
		return r
	}
	return &CatchRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new catch row and returns the assigned identifier.
func (r *CatchRepository) Create(ctx context.Context, c domain.Catch) (string, error) {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := r.builder.Insert("fishlog.catches").
		Columns(
			"id",
			"owner_id",
			"fish_type",
			"weight",
			"length",
			"location",
			"bait",
			"notes",
			"photo",
			"caught_at",
			"created_at",
		).
		Values(
			id,
			c.OwnerID,
			c.FishType,
			c.Weight,
			c.Length,
			c.Location,
			c.Bait,
			c.Notes,
			c.Photo,
			c.Date,
			c.CreatedAt,
		)

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert catch sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, sql, args...); err != nil {
		return "", fmt.Errorf("insert catch: %w", err)
	}

	return id, nil
}

// ListByOwner returns the owner's catches ordered by capture date, newest first.
func (r *CatchRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Catch, error) {
	stmt, args, err := r.builder.
		Select(
			"id",
			"owner_id",
			"fish_type",
			"weight",
			"length",
			"location",
			"bait",
			"notes",
			"photo",
			"caught_at",
			"created_at",
		).
		From("fishlog.catches").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("caught_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select catches sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select catches: %w", err)
	}
	defer rows.Close()

	var catches []domain.Catch
	for rows.Next() {
		var c domain.Catch
		if err := rows.Scan(
			&c.ID,
			&c.OwnerID,
			&c.FishType,
			&c.Weight,
			&c.Length,
			&c.Location,
			&c.Bait,
			&c.Notes,
			&c.Photo,
			&c.Date,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan catch: %w", err)
		}
		catches = append(catches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catches: %w", err)
	}

	return catches, nil
}

// Update applies the non-nil patch fields to a catch row. The owner id is
// part of the match, so another user's row reads as not found.
func (r *CatchRepository) Update(ctx context.Context, ownerID, id string, patch domain.CatchPatch) error {
	update := r.builder.Update("fishlog.catches").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID})

	changed := false
	if patch.FishType != nil {
		update = update.Set("fish_type", *patch.FishType)
		changed = true
	}
	if patch.Weight != nil {
		update = update.Set("weight", *patch.Weight)
		changed = true
	}
	if patch.Length != nil {
		update = update.Set("length", *patch.Length)
		changed = true
	}
	if patch.Location != nil {
		update = update.Set("location", *patch.Location)
		changed = true
	}
	if patch.Bait != nil {
		update = update.Set("bait", *patch.Bait)
		changed = true
	}
	if patch.Notes != nil {
		update = update.Set("notes", *patch.Notes)
		changed = true
	}
	if patch.Photo != nil {
		update = update.Set("photo", *patch.Photo)
		changed = true
	}
	if patch.Date != nil {
		update = update.Set("caught_at", *patch.Date)
		changed = true
	}
	if !changed {
		return nil
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build update catch sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update catch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a catch row owned by ownerID.
func (r *CatchRepository) Delete(ctx context.Context, ownerID, id string) error {
	sql, args, err := r.builder.Delete("fishlog.catches").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete catch sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete catch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
