package postgres

import (
	"context"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okunev/fishlog/internal/core/domain"
)

// ProfileRepository implements port.ProfileRepository using PostgreSQL.
type ProfileRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewProfileRepository wires a PostgreSQL-backed profile repository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the owner's profile document, or nil when absent.
func (r *ProfileRepository) Get(ctx context.Context, ownerID string) (*domain.Profile, error) {
	stmt, args, err := r.builder.
		Select("name", "email", "avatar").
		From("fishlog.user_profiles").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select profile sql: %w", err)
	}

	var p domain.Profile
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&p.Name, &p.Email, &p.Avatar); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	return &p, nil
}

// Upsert merges the update into the stored profile row.
func (r *ProfileRepository) Upsert(ctx context.Context, ownerID string, update domain.ProfileUpdate) error {
	current, err := r.Get(ctx, ownerID)
	if err != nil {
		return err
	}

	var merged domain.Profile
	if current != nil {
		merged = *current
	}
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Email != nil {
		merged.Email = *update.Email
	}
	if update.Avatar != nil {
		merged.Avatar = *update.Avatar
	}

	query := r.builder.Insert("fishlog.user_profiles").
		Columns("owner_id", "name", "email", "avatar", "updated_at").
		Values(ownerID, merged.Name, merged.Email, merged.Avatar, time.Now().UTC()).
		Suffix(`ON CONFLICT (owner_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			avatar = EXCLUDED.avatar,
			updated_at = EXCLUDED.updated_at`)

	stmt, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert profile sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
