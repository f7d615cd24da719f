package workshops

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/quote"
	"github.com/beatworks/workshop-dashboard/internal/repository"

	"github.com/google/uuid"
)

type stubWorkshopRepo struct {
	requests map[uuid.UUID]domain.WorkshopRequest
}

func newStubWorkshopRepo() *stubWorkshopRepo {
	return &stubWorkshopRepo{requests: map[uuid.UUID]domain.WorkshopRequest{}}
}

func (s *stubWorkshopRepo) Create(_ context.Context, req domain.WorkshopRequest) (domain.WorkshopRequest, error) {
	req.CreatedAt = time.Now().UTC()
	req.UpdatedAt = req.CreatedAt
	s.requests[req.ID] = req
	return req, nil
}

func (s *stubWorkshopRepo) GetByID(_ context.Context, id uuid.UUID) (domain.WorkshopRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return domain.WorkshopRequest{}, domain.ErrNotFound
	}
	return req, nil
}

func (s *stubWorkshopRepo) List(_ context.Context, status *domain.WorkshopStatus) ([]domain.WorkshopRequest, error) {
	var out []domain.WorkshopRequest
	for _, req := range s.requests {
		if status != nil && req.Status != *status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (s *stubWorkshopRepo) Update(_ context.Context, req domain.WorkshopRequest) (domain.WorkshopRequest, error) {
	if _, ok := s.requests[req.ID]; !ok {
		return domain.WorkshopRequest{}, domain.ErrNotFound
	}
	req.UpdatedAt = time.Now().UTC()
	s.requests[req.ID] = req
	return req, nil
}

func (s *stubWorkshopRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.requests[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.requests, id)
	return nil
}

var _ repository.WorkshopRepository = (*stubWorkshopRepo)(nil)

type stubCatalogRepo struct {
	tiers []domain.PricingTier
}

func (s *stubCatalogRepo) CreateTier(_ context.Context, tier domain.PricingTier) (domain.PricingTier, error) {
	s.tiers = append(s.tiers, tier)
	return tier, nil
}

func (s *stubCatalogRepo) GetTier(_ context.Context, id uuid.UUID) (domain.PricingTier, error) {
	for _, tier := range s.tiers {
		if tier.ID == id {
			return tier, nil
		}
	}
	return domain.PricingTier{}, domain.ErrNotFound
}

func (s *stubCatalogRepo) ListTiers(_ context.Context) ([]domain.PricingTier, error) {
	return s.tiers, nil
}

func (s *stubCatalogRepo) UpdateTier(_ context.Context, tier domain.PricingTier) (domain.PricingTier, error) {
	return tier, nil
}

func (s *stubCatalogRepo) DeleteTier(_ context.Context, _ uuid.UUID) error { return nil }

func (s *stubCatalogRepo) CreateLocation(_ context.Context, loc domain.Location) (domain.Location, error) {
	return loc, nil
}

func (s *stubCatalogRepo) GetLocation(_ context.Context, _ uuid.UUID) (domain.Location, error) {
	return domain.Location{}, domain.ErrNotFound
}

func (s *stubCatalogRepo) ListLocations(_ context.Context) ([]domain.Location, error) {
	return nil, nil
}

func (s *stubCatalogRepo) UpdateLocation(_ context.Context, loc domain.Location) (domain.Location, error) {
	return loc, nil
}

func (s *stubCatalogRepo) DeleteLocation(_ context.Context, _ uuid.UUID) error { return nil }

var _ repository.CatalogRepository = (*stubCatalogRepo)(nil)

type stubGenerator struct {
	email    string
	err      error
	lastReq  domain.WorkshopRequest
	lastTier []domain.PricingTier
}

func (s *stubGenerator) Draft(_ context.Context, req domain.WorkshopRequest, tiers []domain.PricingTier) (string, error) {
	s.lastReq = req
	s.lastTier = tiers
	return s.email, s.err
}

var _ quote.Generator = (*stubGenerator)(nil)

func TestCreateRequestDefaults(t *testing.T) {
	repo := newStubWorkshopRepo()
	service := NewService(repo, &stubCatalogRepo{}, nil)

	req, err := service.CreateRequest(context.Background(), CreateRequestInput{
		Name:  "  Dana  ",
		Email: "dana@example.com",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if req.Name != "Dana" {
		t.Fatalf("expected trimmed name, got %q", req.Name)
	}
	if req.Status != domain.WorkshopStatusNew {
		t.Fatalf("expected status new, got %s", req.Status)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	service := NewService(newStubWorkshopRepo(), &stubCatalogRepo{}, nil)

	if _, err := service.CreateRequest(context.Background(), CreateRequestInput{Email: "x@y.z"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}
	if _, err := service.CreateRequest(context.Background(), CreateRequestInput{Name: "Dana"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing email, got %v", err)
	}
}

func TestUpdateRequestRejectsUnknownStatus(t *testing.T) {
	repo := newStubWorkshopRepo()
	service := NewService(repo, &stubCatalogRepo{}, nil)

	req, _ := service.CreateRequest(context.Background(), CreateRequestInput{Name: "Dana", Email: "d@e.f"})
	bad := "mystery"
	if _, err := service.UpdateRequest(context.Background(), req.ID, UpdateRequestInput{Status: &bad}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDraftQuoteEmailMarksQuoted(t *testing.T) {
	repo := newStubWorkshopRepo()
	description := "Two hour session"
	catalog := &stubCatalogRepo{tiers: []domain.PricingTier{
		{ID: uuid.New(), Name: "Standard", PriceCents: 25000, Description: &description},
	}}
	generator := &stubGenerator{email: "Hi Dana, here is your quote."}
	service := NewService(repo, catalog, generator)

	req, _ := service.CreateRequest(context.Background(), CreateRequestInput{Name: "Dana", Email: "d@e.f"})

	email, updated, err := service.DraftQuoteEmail(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("draft returned error: %v", err)
	}
	if email != "Hi Dana, here is your quote." {
		t.Fatalf("unexpected email %q", email)
	}
	if updated.Status != domain.WorkshopStatusQuoted {
		t.Fatalf("expected status quoted, got %s", updated.Status)
	}
	if len(generator.lastTier) != 1 {
		t.Fatalf("expected pricing tiers passed to generator, got %d", len(generator.lastTier))
	}
}

func TestDraftQuoteEmailGeneratorFailure(t *testing.T) {
	repo := newStubWorkshopRepo()
	generator := &stubGenerator{err: errors.New("model unavailable")}
	service := NewService(repo, &stubCatalogRepo{}, generator)

	req, _ := service.CreateRequest(context.Background(), CreateRequestInput{Name: "Dana", Email: "d@e.f"})

	if _, _, err := service.DraftQuoteEmail(context.Background(), req.ID); err == nil {
		t.Fatalf("expected generator failure to surface")
	}
	stored, _ := repo.GetByID(context.Background(), req.ID)
	if stored.Status != domain.WorkshopStatusNew {
		t.Fatalf("failed draft must not change status, got %s", stored.Status)
	}
}

func TestDraftQuoteEmailWithoutGenerator(t *testing.T) {
	service := NewService(newStubWorkshopRepo(), &stubCatalogRepo{}, nil)

	if _, _, err := service.DraftQuoteEmail(context.Background(), uuid.New()); !domain.IsValidation(err) {
		t.Fatalf("expected validation error when unconfigured, got %v", err)
	}
}

func TestExportXLSX(t *testing.T) {
	repo := newStubWorkshopRepo()
	service := NewService(repo, &stubCatalogRepo{}, nil)

	service.CreateRequest(context.Background(), CreateRequestInput{Name: "Dana", Email: "d@e.f"})
	service.CreateRequest(context.Background(), CreateRequestInput{Name: "Sam", Email: "s@e.f"})

	file, err := service.ExportXLSX(context.Background())
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][1] != "Email" {
		t.Fatalf("unexpected header row %v", rows[0])
	}
}
