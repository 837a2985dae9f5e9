package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portsrepo "github.com/elaroma/cafeteria_pos/internal/core/ports/repositories"
	"github.com/elaroma/cafeteria_pos/internal/models"
)

type PgxActivityRepository struct {
	BaseRepository
}

// newPgxActivityRepository creates a repository for the audit trail.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepository {
	return &PgxActivityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ActivityRepository = (*PgxActivityRepository)(nil)

// RecordActivity appends one audit-trail entry.
func (r *PgxActivityRepository) RecordActivity(ctx context.Context, activity domain.Activity) error {
	query := `
		INSERT INTO activity_log (occurred_at, kind, description, actor)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, activity.Timestamp, activity.Kind, activity.Description, activity.Actor)
	if err != nil {
		return fmt.Errorf("failed to record activity %s: %w", activity.Kind, err)
	}
	return nil
}

// ListRecentActivities returns the newest entries first.
func (r *PgxActivityRepository) ListRecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	query := `
		SELECT occurred_at, kind, description, actor
		FROM activity_log
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	defer rows.Close()

	modelActivities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Activity, error) {
		var a models.Activity
		err := row.Scan(&a.Timestamp, &a.Kind, &a.Description, &a.Actor)
		return a, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Activity{}, nil
		}
		return nil, fmt.Errorf("failed to scan activity log: %w", err)
	}

	activities := make([]domain.Activity, len(modelActivities))
	for i, m := range modelActivities {
		activities[i] = domain.Activity{
			Timestamp:   m.Timestamp,
			Kind:        m.Kind,
			Description: m.Description,
			Actor:       m.Actor,
		}
	}
	return activities, nil
}
