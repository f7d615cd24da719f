package repository

import (
	"context"
	"fmt"

	"github.com/beatworks/workshop-dashboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository wires the dashboard count queries.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) CountWorkshopsByStatus(ctx context.Context, status domain.WorkshopStatus) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM workshop_requests WHERE status = $1`, string(status))
}

func (r *statsRepository) CountActiveChangesByStatus(ctx context.Context, status domain.ChangeStatus) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM session_changes WHERE status = $1 AND deleted_at IS NULL`, string(status))
}

func (r *statsRepository) CountMediaItems(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM media_items`)
}

func (r *statsRepository) CountUpcomingShows(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM shows WHERE show_date >= now()`)
}

func (r *statsRepository) CountTestimonials(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM testimonials`)
}

func (r *statsRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard count: %w", err)
	}
	return n, nil
}
