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

const showColumns = `id, venue, city, show_date, ticket_url, created_at`
const postColumns = `id, title, body, image_url, published, published_at, created_at, updated_at`

type bandRepository struct {
	pool *pgxpool.Pool
}

// NewBandRepository wires the band micro-site repository.
func NewBandRepository(pool *pgxpool.Pool) BandRepository {
	return &bandRepository{pool: pool}
}

func (r *bandRepository) CreateShow(ctx context.Context, show domain.Show) (domain.Show, error) {
	if show.ID == uuid.Nil {
		show.ID = uuid.New()
	}
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO shows (id, venue, city, show_date, ticket_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+showColumns,
		show.ID, show.Venue, textParam(show.City), show.ShowDate, textParam(show.TicketURL),
	)
	created, err := scanShow(row)
	if err != nil {
		return domain.Show{}, fmt.Errorf("insert show: %w", err)
	}
	return created, nil
}

func (r *bandRepository) GetShow(ctx context.Context, id uuid.UUID) (domain.Show, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+showColumns+` FROM shows WHERE id = $1`, id)
	show, err := scanShow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Show{}, domain.ErrNotFound
		}
		return domain.Show{}, fmt.Errorf("get show: %w", err)
	}
	return show, nil
}

func (r *bandRepository) ListShows(ctx context.Context) ([]domain.Show, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+showColumns+` FROM shows ORDER BY show_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer rows.Close()

	shows := []domain.Show{}
	for rows.Next() {
		show, scanErr := scanShow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan show: %w", scanErr)
		}
		shows = append(shows, show)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate shows: %w", rowsErr)
	}
	return shows, nil
}

func (r *bandRepository) UpdateShow(ctx context.Context, show domain.Show) (domain.Show, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE shows SET venue = $2, city = $3, show_date = $4, ticket_url = $5
		 WHERE id = $1
		 RETURNING `+showColumns,
		show.ID, show.Venue, textParam(show.City), show.ShowDate, textParam(show.TicketURL),
	)
	updated, err := scanShow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Show{}, domain.ErrNotFound
		}
		return domain.Show{}, fmt.Errorf("update show: %w", err)
	}
	return updated, nil
}

func (r *bandRepository) DeleteShow(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete show: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bandRepository) CreatePost(ctx context.Context, post domain.BandPost) (domain.BandPost, error) {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO band_posts (id, title, body, image_url, published, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+postColumns,
		post.ID, post.Title, textParam(post.Body), textParam(post.ImageURL),
		post.Published, timestampParam(post.PublishedAt),
	)
	created, err := scanPost(row)
	if err != nil {
		return domain.BandPost{}, fmt.Errorf("insert band post: %w", err)
	}
	return created, nil
}

func (r *bandRepository) GetPost(ctx context.Context, id uuid.UUID) (domain.BandPost, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM band_posts WHERE id = $1`, id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BandPost{}, domain.ErrNotFound
		}
		return domain.BandPost{}, fmt.Errorf("get band post: %w", err)
	}
	return post, nil
}

func (r *bandRepository) ListPosts(ctx context.Context, publishedOnly bool) ([]domain.BandPost, error) {
	query := `SELECT ` + postColumns + ` FROM band_posts ORDER BY created_at DESC`
	if publishedOnly {
		query = `SELECT ` + postColumns + ` FROM band_posts WHERE published ORDER BY published_at DESC`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list band posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.BandPost{}
	for rows.Next() {
		post, scanErr := scanPost(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan band post: %w", scanErr)
		}
		posts = append(posts, post)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate band posts: %w", rowsErr)
	}
	return posts, nil
}

func (r *bandRepository) UpdatePost(ctx context.Context, post domain.BandPost) (domain.BandPost, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE band_posts
		 SET title = $2, body = $3, image_url = $4, published = $5, published_at = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING `+postColumns,
		post.ID, post.Title, textParam(post.Body), textParam(post.ImageURL),
		post.Published, timestampParam(post.PublishedAt),
	)
	updated, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BandPost{}, domain.ErrNotFound
		}
		return domain.BandPost{}, fmt.Errorf("update band post: %w", err)
	}
	return updated, nil
}

func (r *bandRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM band_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete band post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanShow(row pgx.Row) (domain.Show, error) {
	var (
		show      domain.Show
		city      pgtype.Text
		ticketURL pgtype.Text
	)
	if err := row.Scan(&show.ID, &show.Venue, &city, &show.ShowDate, &ticketURL, &show.CreatedAt); err != nil {
		return domain.Show{}, err
	}
	show.City = textPtr(city)
	show.TicketURL = textPtr(ticketURL)
	return show, nil
}

func scanPost(row pgx.Row) (domain.BandPost, error) {
	var (
		post        domain.BandPost
		body        pgtype.Text
		imageURL    pgtype.Text
		publishedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&body,
		&imageURL,
		&post.Published,
		&publishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return domain.BandPost{}, err
	}
	post.Body = textPtr(body)
	post.ImageURL = textPtr(imageURL)
	post.PublishedAt = timestampPtr(publishedAt)
	return post, nil
}
