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

const tierColumns = `id, name, description, price_cents, features, sort_order, created_at, updated_at`
const locationColumns = `id, name, address, capacity, notes, created_at, updated_at`

type catalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository wires a pricing tier and location repository.
func NewCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{pool: pool}
}

func (r *catalogRepository) CreateTier(ctx context.Context, tier domain.PricingTier) (domain.PricingTier, error) {
	if tier.ID == uuid.Nil {
		tier.ID = uuid.New()
	}
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO pricing_tiers (id, name, description, price_cents, features, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+tierColumns,
		tier.ID, tier.Name, textParam(tier.Description), tier.PriceCents, textArrayParam(tier.Features), tier.SortOrder,
	)
	created, err := scanTier(row)
	if err != nil {
		return domain.PricingTier{}, fmt.Errorf("insert pricing tier: %w", err)
	}
	return created, nil
}

func (r *catalogRepository) GetTier(ctx context.Context, id uuid.UUID) (domain.PricingTier, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tierColumns+` FROM pricing_tiers WHERE id = $1`, id)
	tier, err := scanTier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PricingTier{}, domain.ErrNotFound
		}
		return domain.PricingTier{}, fmt.Errorf("get pricing tier: %w", err)
	}
	return tier, nil
}

func (r *catalogRepository) ListTiers(ctx context.Context) ([]domain.PricingTier, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+tierColumns+` FROM pricing_tiers ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pricing tiers: %w", err)
	}
	defer rows.Close()

	tiers := []domain.PricingTier{}
	for rows.Next() {
		tier, scanErr := scanTier(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan pricing tier: %w", scanErr)
		}
		tiers = append(tiers, tier)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate pricing tiers: %w", rowsErr)
	}
	return tiers, nil
}

func (r *catalogRepository) UpdateTier(ctx context.Context, tier domain.PricingTier) (domain.PricingTier, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE pricing_tiers
		 SET name = $2, description = $3, price_cents = $4, features = $5, sort_order = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING `+tierColumns,
		tier.ID, tier.Name, textParam(tier.Description), tier.PriceCents, textArrayParam(tier.Features), tier.SortOrder,
	)
	updated, err := scanTier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PricingTier{}, domain.ErrNotFound
		}
		return domain.PricingTier{}, fmt.Errorf("update pricing tier: %w", err)
	}
	return updated, nil
}

func (r *catalogRepository) DeleteTier(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pricing_tiers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pricing tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *catalogRepository) CreateLocation(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO locations (id, name, address, capacity, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+locationColumns,
		loc.ID, loc.Name, textParam(loc.Address), intParam(loc.Capacity), textParam(loc.Notes),
	)
	created, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("insert location: %w", err)
	}
	return created, nil
}

func (r *catalogRepository) GetLocation(ctx context.Context, id uuid.UUID) (domain.Location, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, domain.ErrNotFound
		}
		return domain.Location{}, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

func (r *catalogRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := []domain.Location{}
	for rows.Next() {
		loc, scanErr := scanLocation(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan location: %w", scanErr)
		}
		locations = append(locations, loc)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate locations: %w", rowsErr)
	}
	return locations, nil
}

func (r *catalogRepository) UpdateLocation(ctx context.Context, loc domain.Location) (domain.Location, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE locations
		 SET name = $2, address = $3, capacity = $4, notes = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+locationColumns,
		loc.ID, loc.Name, textParam(loc.Address), intParam(loc.Capacity), textParam(loc.Notes),
	)
	updated, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, domain.ErrNotFound
		}
		return domain.Location{}, fmt.Errorf("update location: %w", err)
	}
	return updated, nil
}

func (r *catalogRepository) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTier(row pgx.Row) (domain.PricingTier, error) {
	var (
		tier        domain.PricingTier
		description pgtype.Text
	)
	if err := row.Scan(
		&tier.ID,
		&tier.Name,
		&description,
		&tier.PriceCents,
		&tier.Features,
		&tier.SortOrder,
		&tier.CreatedAt,
		&tier.UpdatedAt,
	); err != nil {
		return domain.PricingTier{}, err
	}
	tier.Description = textPtr(description)
	return tier, nil
}

func scanLocation(row pgx.Row) (domain.Location, error) {
	var (
		loc      domain.Location
		address  pgtype.Text
		capacity pgtype.Int4
		notes    pgtype.Text
	)
	if err := row.Scan(
		&loc.ID,
		&loc.Name,
		&address,
		&capacity,
		&notes,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	); err != nil {
		return domain.Location{}, err
	}
	loc.Address = textPtr(address)
	loc.Notes = textPtr(notes)
	if capacity.Valid {
		value := int(capacity.Int32)
		loc.Capacity = &value
	}
	return loc, nil
}
