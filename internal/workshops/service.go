// Package workshops manages booking inquiries through the sales funnel, from
// first contact through quoting to a booked or declined outcome.
package workshops

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/quote"
	"github.com/beatworks/workshop-dashboard/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Service handles inquiry CRUD, quote-email drafting, and spreadsheet export.
type Service struct {
	repo    repository.WorkshopRepository
	catalog repository.CatalogRepository
	quotes  quote.Generator
}

// NewService wires the inquiry manager. The quote generator may be nil when no
// API key is configured; quote drafting then fails with a validation error.
func NewService(repo repository.WorkshopRepository, catalog repository.CatalogRepository, quotes quote.Generator) *Service {
	return &Service{repo: repo, catalog: catalog, quotes: quotes}
}

// CreateRequestInput carries the fields accepted when recording an inquiry.
type CreateRequestInput struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone"`
	EventDate *time.Time `json:"eventDate"`
	Location  *string    `json:"location"`
	GroupSize *int       `json:"groupSize"`
	Message   *string    `json:"message"`
}

// CreateRequest records a new inquiry with status new.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (domain.WorkshopRequest, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" {
		return domain.WorkshopRequest{}, domain.NewValidationError("name is required")
	}
	if email == "" {
		return domain.WorkshopRequest{}, domain.NewValidationError("email is required")
	}

	req := domain.WorkshopRequest{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     input.Phone,
		EventDate: input.EventDate,
		Location:  input.Location,
		GroupSize: input.GroupSize,
		Message:   input.Message,
		Status:    domain.WorkshopStatusNew,
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return domain.WorkshopRequest{}, fmt.Errorf("create workshop request: %w", err)
	}
	return created, nil
}

// ListRequests returns inquiries, optionally filtered by funnel status.
func (s *Service) ListRequests(ctx context.Context, status *domain.WorkshopStatus) ([]domain.WorkshopRequest, error) {
	items, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list workshop requests: %w", err)
	}
	return items, nil
}

// GetRequest returns a single inquiry by id.
func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (domain.WorkshopRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.WorkshopRequest{}, fmt.Errorf("get workshop request %s: %w", id, err)
	}
	return req, nil
}

// UpdateRequestInput carries the patchable inquiry fields. Nil fields are left
// unchanged.
type UpdateRequestInput struct {
	Name      *string    `json:"name"`
	Email     *string    `json:"email"`
	Phone     *string    `json:"phone"`
	EventDate *time.Time `json:"eventDate"`
	Location  *string    `json:"location"`
	GroupSize *int       `json:"groupSize"`
	Message   *string    `json:"message"`
	Status    *string    `json:"status"`
}

// UpdateRequest applies a partial update to an inquiry.
func (s *Service) UpdateRequest(ctx context.Context, id uuid.UUID, input UpdateRequestInput) (domain.WorkshopRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.WorkshopRequest{}, fmt.Errorf("get workshop request %s: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return domain.WorkshopRequest{}, domain.NewValidationError("name cannot be empty")
		}
		req.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return domain.WorkshopRequest{}, domain.NewValidationError("email cannot be empty")
		}
		req.Email = email
	}
	if input.Phone != nil {
		req.Phone = input.Phone
	}
	if input.EventDate != nil {
		req.EventDate = input.EventDate
	}
	if input.Location != nil {
		req.Location = input.Location
	}
	if input.GroupSize != nil {
		req.GroupSize = input.GroupSize
	}
	if input.Message != nil {
		req.Message = input.Message
	}
	if input.Status != nil {
		status := domain.WorkshopStatus(*input.Status)
		if !status.Valid() {
			return domain.WorkshopRequest{}, domain.NewValidationError("unknown status %q", *input.Status)
		}
		req.Status = status
	}

	updated, err := s.repo.Update(ctx, req)
	if err != nil {
		return domain.WorkshopRequest{}, fmt.Errorf("update workshop request %s: %w", id, err)
	}
	return updated, nil
}

// DeleteRequest removes an inquiry.
func (s *Service) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete workshop request %s: %w", id, err)
	}
	return nil
}

// DraftQuoteEmail drafts a quote email for the inquiry, feeding the current
// pricing packages to the generator, and marks the inquiry as quoted. The
// drafted text is returned to the caller; the inquiry row stores only the
// status change.
func (s *Service) DraftQuoteEmail(ctx context.Context, id uuid.UUID) (string, domain.WorkshopRequest, error) {
	if s.quotes == nil {
		return "", domain.WorkshopRequest{}, domain.NewValidationError("quote drafting is not configured")
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", domain.WorkshopRequest{}, fmt.Errorf("get workshop request %s: %w", id, err)
	}

	tiers, err := s.catalog.ListTiers(ctx)
	if err != nil {
		return "", domain.WorkshopRequest{}, fmt.Errorf("list pricing tiers: %w", err)
	}

	email, err := s.quotes.Draft(ctx, req, tiers)
	if err != nil {
		return "", domain.WorkshopRequest{}, fmt.Errorf("draft quote email: %w", err)
	}

	req.Status = domain.WorkshopStatusQuoted
	updated, err := s.repo.Update(ctx, req)
	if err != nil {
		return "", domain.WorkshopRequest{}, fmt.Errorf("mark request %s quoted: %w", id, err)
	}
	return email, updated, nil
}

var exportHeader = []any{"Name", "Email", "Phone", "Event Date", "Location", "Group Size", "Status", "Received"}

// ExportXLSX renders all inquiries into a spreadsheet, one row per inquiry.
func (s *Service) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	items, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list workshop requests: %w", err)
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	for i, req := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("resolve cell for row %d: %w", i+2, err)
		}
		row := []any{
			req.Name,
			req.Email,
			derefOr(req.Phone, ""),
			formatDate(req.EventDate),
			derefOr(req.Location, ""),
			groupSize(req.GroupSize),
			string(req.Status),
			req.CreatedAt.Format("2006-01-02"),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}

func derefOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("2006-01-02")
}

func groupSize(value *int) any {
	if value == nil {
		return ""
	}
	return *value
}
