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

const workshopColumns = `id, name, email, phone, event_date, location, group_size, message,
	status, created_at, updated_at`

type workshopRepository struct {
	pool *pgxpool.Pool
}

// NewWorkshopRepository wires a booking-inquiry repository backed by pgxpool.
func NewWorkshopRepository(pool *pgxpool.Pool) WorkshopRepository {
	return &workshopRepository{pool: pool}
}

func (r *workshopRepository) Create(ctx context.Context, req domain.WorkshopRequest) (domain.WorkshopRequest, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO workshop_requests (id, name, email, phone, event_date, location, group_size, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+workshopColumns,
		req.ID,
		req.Name,
		req.Email,
		textParam(req.Phone),
		timestampParam(req.EventDate),
		textParam(req.Location),
		intParam(req.GroupSize),
		textParam(req.Message),
		string(req.Status),
	)
	created, err := scanWorkshop(row)
	if err != nil {
		return domain.WorkshopRequest{}, fmt.Errorf("insert workshop request: %w", err)
	}
	return created, nil
}

func (r *workshopRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.WorkshopRequest, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+workshopColumns+` FROM workshop_requests WHERE id = $1`, id)
	req, err := scanWorkshop(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.WorkshopRequest{}, domain.ErrNotFound
		}
		return domain.WorkshopRequest{}, fmt.Errorf("get workshop request: %w", err)
	}
	return req, nil
}

func (r *workshopRepository) List(ctx context.Context, status *domain.WorkshopStatus) ([]domain.WorkshopRequest, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshop_requests ORDER BY created_at DESC`
	args := []any{}
	if status != nil {
		query = `SELECT ` + workshopColumns + ` FROM workshop_requests WHERE status = $1 ORDER BY created_at DESC`
		args = append(args, string(*status))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workshop requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.WorkshopRequest{}
	for rows.Next() {
		req, scanErr := scanWorkshop(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan workshop request: %w", scanErr)
		}
		requests = append(requests, req)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate workshop requests: %w", rowsErr)
	}
	return requests, nil
}

func (r *workshopRepository) Update(ctx context.Context, req domain.WorkshopRequest) (domain.WorkshopRequest, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE workshop_requests
		 SET name = $2, email = $3, phone = $4, event_date = $5, location = $6, group_size = $7,
		     message = $8, status = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING `+workshopColumns,
		req.ID,
		req.Name,
		req.Email,
		textParam(req.Phone),
		timestampParam(req.EventDate),
		textParam(req.Location),
		intParam(req.GroupSize),
		textParam(req.Message),
		string(req.Status),
	)
	updated, err := scanWorkshop(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.WorkshopRequest{}, domain.ErrNotFound
		}
		return domain.WorkshopRequest{}, fmt.Errorf("update workshop request: %w", err)
	}
	return updated, nil
}

func (r *workshopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workshop_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workshop request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanWorkshop(row pgx.Row) (domain.WorkshopRequest, error) {
	var (
		req       domain.WorkshopRequest
		phone     pgtype.Text
		eventDate pgtype.Timestamptz
		location  pgtype.Text
		groupSize pgtype.Int4
		message   pgtype.Text
		status    string
	)
	if err := row.Scan(
		&req.ID,
		&req.Name,
		&req.Email,
		&phone,
		&eventDate,
		&location,
		&groupSize,
		&message,
		&status,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return domain.WorkshopRequest{}, err
	}

	req.Phone = textPtr(phone)
	req.Location = textPtr(location)
	req.Message = textPtr(message)
	req.Status = domain.WorkshopStatus(status)
	if eventDate.Valid {
		value := eventDate.Time
		req.EventDate = &value
	}
	if groupSize.Valid {
		value := int(groupSize.Int32)
		req.GroupSize = &value
	}
	return req, nil
}
