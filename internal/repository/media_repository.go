package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/beatworks/workshop-dashboard/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const mediaColumns = `id, url, path, caption, sort_order, created_at`

type mediaRepository struct {
	pool *pgxpool.Pool
}

// NewMediaRepository wires the gallery repository.
func NewMediaRepository(pool *pgxpool.Pool) MediaRepository {
	return &mediaRepository{pool: pool}
}

func (r *mediaRepository) Create(ctx context.Context, item domain.MediaItem) (domain.MediaItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO media_items (id, url, path, caption, sort_order)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+mediaColumns,
		item.ID, item.URL, item.Path, textParam(item.Caption), item.SortOrder,
	)
	created, err := scanMedia(row)
	if err != nil {
		return domain.MediaItem{}, fmt.Errorf("insert media item: %w", err)
	}
	return created, nil
}

func (r *mediaRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.MediaItem, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+mediaColumns+` FROM media_items WHERE id = $1`, id)
	item, err := scanMedia(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MediaItem{}, domain.ErrNotFound
		}
		return domain.MediaItem{}, fmt.Errorf("get media item: %w", err)
	}
	return item, nil
}

func (r *mediaRepository) List(ctx context.Context) ([]domain.MediaItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+mediaColumns+` FROM media_items ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list media items: %w", err)
	}
	defer rows.Close()

	items := []domain.MediaItem{}
	for rows.Next() {
		item, scanErr := scanMedia(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan media item: %w", scanErr)
		}
		items = append(items, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate media items: %w", rowsErr)
	}
	return items, nil
}

func (r *mediaRepository) UpdateCaption(ctx context.Context, id uuid.UUID, caption *string, sortOrder int) (domain.MediaItem, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE media_items SET caption = $2, sort_order = $3
		 WHERE id = $1
		 RETURNING `+mediaColumns,
		id, textParam(caption), sortOrder,
	)
	updated, err := scanMedia(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MediaItem{}, domain.ErrNotFound
		}
		return domain.MediaItem{}, fmt.Errorf("update media item: %w", err)
	}
	return updated, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM media_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMedia(row pgx.Row) (domain.MediaItem, error) {
	var (
		item    domain.MediaItem
		caption pgtype.Text
	)
	if err := row.Scan(&item.ID, &item.URL, &item.Path, &caption, &item.SortOrder, &item.CreatedAt); err != nil {
		return domain.MediaItem{}, err
	}
	item.Caption = textPtr(caption)
	return item, nil
}
