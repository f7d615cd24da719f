package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/repository"

	"github.com/google/uuid"
)

type stubCatalogRepo struct {
	tiers     []domain.PricingTier
	locations []domain.Location
}

func (s *stubCatalogRepo) CreateTier(_ context.Context, tier domain.PricingTier) (domain.PricingTier, error) {
	tier.CreatedAt = time.Now().UTC()
	tier.UpdatedAt = tier.CreatedAt
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
	for i := range s.tiers {
		if s.tiers[i].ID == tier.ID {
			tier.UpdatedAt = time.Now().UTC()
			s.tiers[i] = tier
			return tier, nil
		}
	}
	return domain.PricingTier{}, domain.ErrNotFound
}

func (s *stubCatalogRepo) DeleteTier(_ context.Context, id uuid.UUID) error {
	for i := range s.tiers {
		if s.tiers[i].ID == id {
			s.tiers = append(s.tiers[:i], s.tiers[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubCatalogRepo) CreateLocation(_ context.Context, loc domain.Location) (domain.Location, error) {
	loc.CreatedAt = time.Now().UTC()
	loc.UpdatedAt = loc.CreatedAt
	s.locations = append(s.locations, loc)
	return loc, nil
}

func (s *stubCatalogRepo) GetLocation(_ context.Context, id uuid.UUID) (domain.Location, error) {
	for _, loc := range s.locations {
		if loc.ID == id {
			return loc, nil
		}
	}
	return domain.Location{}, domain.ErrNotFound
}

func (s *stubCatalogRepo) ListLocations(_ context.Context) ([]domain.Location, error) {
	return s.locations, nil
}

func (s *stubCatalogRepo) UpdateLocation(_ context.Context, loc domain.Location) (domain.Location, error) {
	for i := range s.locations {
		if s.locations[i].ID == loc.ID {
			loc.UpdatedAt = time.Now().UTC()
			s.locations[i] = loc
			return loc, nil
		}
	}
	return domain.Location{}, domain.ErrNotFound
}

func (s *stubCatalogRepo) DeleteLocation(_ context.Context, id uuid.UUID) error {
	for i := range s.locations {
		if s.locations[i].ID == id {
			s.locations = append(s.locations[:i], s.locations[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

var _ repository.CatalogRepository = (*stubCatalogRepo)(nil)

func TestCreateTier(t *testing.T) {
	repo := &stubCatalogRepo{}
	server := httptest.NewServer(NewHTTPHandler(repo).Pricing())
	defer server.Close()

	body := `{"name":"Half Day","priceCents":45000,"features":["2 facilitators","All equipment provided"]}`
	resp, err := http.Post(server.URL+"/pricing", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var tier domain.PricingTier
	if err := json.NewDecoder(resp.Body).Decode(&tier); err != nil {
		t.Fatalf("decoding tier: %v", err)
	}
	if tier.Name != "Half Day" || tier.PriceCents != 45000 || len(tier.Features) != 2 {
		t.Fatalf("unexpected tier %+v", tier)
	}
}

func TestCreateTierValidation(t *testing.T) {
	server := httptest.NewServer(NewHTTPHandler(&stubCatalogRepo{}).Pricing())
	defer server.Close()

	for _, body := range []string{
		`{"priceCents":45000}`,
		`{"name":"  ","priceCents":45000}`,
		`{"name":"Half Day"}`,
		`{"name":"Half Day","priceCents":-1}`,
	} {
		resp, err := http.Post(server.URL+"/pricing", "application/json", bytes.NewBufferString(body))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestUpdateTierPatchesFields(t *testing.T) {
	repo := &stubCatalogRepo{}
	tier, _ := repo.CreateTier(context.Background(), domain.PricingTier{
		ID:         uuid.New(),
		Name:       "Half Day",
		PriceCents: 45000,
		Features:   []string{"2 facilitators"},
	})
	server := httptest.NewServer(NewHTTPHandler(repo).Pricing())
	defer server.Close()

	body := bytes.NewBufferString(`{"priceCents":48000}`)
	req, _ := http.NewRequest(http.MethodPatch, server.URL+"/pricing/"+tier.ID.String(), body)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var updated domain.PricingTier
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decoding tier: %v", err)
	}
	if updated.PriceCents != 48000 {
		t.Fatalf("price not applied: %+v", updated)
	}
	if updated.Name != "Half Day" || len(updated.Features) != 1 {
		t.Fatalf("untouched fields must survive a patch: %+v", updated)
	}
}

func TestGetTierUnknownIDReturns404(t *testing.T) {
	server := httptest.NewServer(NewHTTPHandler(&stubCatalogRepo{}).Pricing())
	defer server.Close()

	resp, err := http.Get(server.URL + "/pricing/" + uuid.NewString())
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateAndDeleteLocation(t *testing.T) {
	repo := &stubCatalogRepo{}
	server := httptest.NewServer(NewHTTPHandler(repo).Locations())
	defer server.Close()

	body := `{"name":"Old Mill Studio","address":"12 Canal St","capacity":40}`
	resp, err := http.Post(server.URL+"/locations", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var loc domain.Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		t.Fatalf("decoding location: %v", err)
	}
	resp.Body.Close()
	if loc.Capacity == nil || *loc.Capacity != 40 {
		t.Fatalf("unexpected location %+v", loc)
	}

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/locations/"+loc.ID.String(), nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(repo.locations) != 0 {
		t.Fatalf("location must be removed, have %d", len(repo.locations))
	}
}
