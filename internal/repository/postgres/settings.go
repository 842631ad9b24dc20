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

// SettingsRepository implements port.SettingsRepository using PostgreSQL.
// The settings document is keyed by owner; an upsert merges partial updates
// into the stored row.
type SettingsRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewSettingsRepository wires a PostgreSQL-backed settings repository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the owner's settings document, or ErrNotFound semantics via nil.
func (r *SettingsRepository) Get(ctx context.Context, ownerID string) (*domain.Settings, error) {
	stmt, args, err := r.builder.
		Select(
			"weather",
			"reminders",
			"new_spots",
			"dark_mode",
			"language",
			"weight_unit",
			"temperature_unit",
		).
		From("fishlog.user_settings").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select settings sql: %w", err)
	}

	var s domain.Settings
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(
		&s.Notifications.Weather,
		&s.Notifications.Reminders,
		&s.Notifications.NewSpots,
		&s.Preferences.DarkMode,
		&s.Preferences.Language,
		&s.Preferences.WeightUnit,
		&s.Preferences.TemperatureUnit,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan settings: %w", err)
	}

	return &s, nil
}

// Upsert merges the update into the stored settings row, creating it with
// defaults for any column the update does not touch.
func (r *SettingsRepository) Upsert(ctx context.Context, ownerID string, update domain.SettingsUpdate) error {
	current, err := r.Get(ctx, ownerID)
	if err != nil {
		return err
	}

	merged := domain.DefaultSettings()
	if current != nil {
		merged = *current
	}
	update.Apply(&merged)

	query := r.builder.Insert("fishlog.user_settings").
		Columns(
			"owner_id",
			"weather",
			"reminders",
			"new_spots",
			"dark_mode",
			"language",
			"weight_unit",
			"temperature_unit",
			"updated_at",
		).
		Values(
			ownerID,
			merged.Notifications.Weather,
			merged.Notifications.Reminders,
			merged.Notifications.NewSpots,
			merged.Preferences.DarkMode,
			merged.Preferences.Language,
			merged.Preferences.WeightUnit,
			merged.Preferences.TemperatureUnit,
			time.Now().UTC(),
		).
		Suffix(`ON CONFLICT (owner_id) DO UPDATE SET
			weather = EXCLUDED.weather,
			reminders = EXCLUDED.reminders,
			new_spots = EXCLUDED.new_spots,
			dark_mode = EXCLUDED.dark_mode,
			language = EXCLUDED.language,
			weight_unit = EXCLUDED.weight_unit,
			temperature_unit = EXCLUDED.temperature_unit,
			updated_at = EXCLUDED.updated_at`)

	stmt, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert settings sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	return nil
}
