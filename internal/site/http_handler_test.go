package site

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/repository"

	"github.com/google/uuid"
)

type stubSiteRepo struct {
	content      map[string]domain.PageContent
	teamMembers  []domain.TeamMember
	testimonials []domain.Testimonial
	faqEntries   []domain.FAQEntry
}

func newStubSiteRepo() *stubSiteRepo {
	return &stubSiteRepo{content: map[string]domain.PageContent{}}
}

func contentKey(page, sectionKey string) string {
	return page + "\x00" + sectionKey
}

func (s *stubSiteRepo) UpsertContent(_ context.Context, content domain.PageContent) (domain.PageContent, error) {
	key := contentKey(content.Page, content.SectionKey)
	if existing, ok := s.content[key]; ok {
		existing.Value = content.Value
		existing.UpdatedAt = time.Now().UTC()
		s.content[key] = existing
		return existing, nil
	}
	content.UpdatedAt = time.Now().UTC()
	s.content[key] = content
	return content, nil
}

func (s *stubSiteRepo) ListContent(_ context.Context, page string) ([]domain.PageContent, error) {
	out := []domain.PageContent{}
	for _, content := range s.content {
		if content.Page == page {
			out = append(out, content)
		}
	}
	return out, nil
}

func (s *stubSiteRepo) DeleteContent(_ context.Context, page, sectionKey string) error {
	key := contentKey(page, sectionKey)
	if _, ok := s.content[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.content, key)
	return nil
}

func (s *stubSiteRepo) CreateTeamMember(_ context.Context, member domain.TeamMember) (domain.TeamMember, error) {
	s.teamMembers = append(s.teamMembers, member)
	return member, nil
}

func (s *stubSiteRepo) ListTeamMembers(_ context.Context) ([]domain.TeamMember, error) {
	return s.teamMembers, nil
}

func (s *stubSiteRepo) UpdateTeamMember(_ context.Context, member domain.TeamMember) (domain.TeamMember, error) {
	for i := range s.teamMembers {
		if s.teamMembers[i].ID == member.ID {
			s.teamMembers[i] = member
			return member, nil
		}
	}
	return domain.TeamMember{}, domain.ErrNotFound
}

func (s *stubSiteRepo) DeleteTeamMember(_ context.Context, id uuid.UUID) error {
	for i := range s.teamMembers {
		if s.teamMembers[i].ID == id {
			s.teamMembers = append(s.teamMembers[:i], s.teamMembers[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubSiteRepo) CreateTestimonial(_ context.Context, t domain.Testimonial) (domain.Testimonial, error) {
	s.testimonials = append(s.testimonials, t)
	return t, nil
}

func (s *stubSiteRepo) ListTestimonials(_ context.Context) ([]domain.Testimonial, error) {
	return s.testimonials, nil
}

func (s *stubSiteRepo) DeleteTestimonial(_ context.Context, id uuid.UUID) error {
	for i := range s.testimonials {
		if s.testimonials[i].ID == id {
			s.testimonials = append(s.testimonials[:i], s.testimonials[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubSiteRepo) CreateFAQEntry(_ context.Context, entry domain.FAQEntry) (domain.FAQEntry, error) {
	s.faqEntries = append(s.faqEntries, entry)
	return entry, nil
}

func (s *stubSiteRepo) ListFAQEntries(_ context.Context) ([]domain.FAQEntry, error) {
	return s.faqEntries, nil
}

func (s *stubSiteRepo) UpdateFAQEntry(_ context.Context, entry domain.FAQEntry) (domain.FAQEntry, error) {
	for i := range s.faqEntries {
		if s.faqEntries[i].ID == entry.ID {
			s.faqEntries[i] = entry
			return entry, nil
		}
	}
	return domain.FAQEntry{}, domain.ErrNotFound
}

func (s *stubSiteRepo) DeleteFAQEntry(_ context.Context, id uuid.UUID) error {
	for i := range s.faqEntries {
		if s.faqEntries[i].ID == id {
			s.faqEntries = append(s.faqEntries[:i], s.faqEntries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

var _ repository.SiteRepository = (*stubSiteRepo)(nil)

func TestContentUpsertCreatesThenOverwrites(t *testing.T) {
	repo := newStubSiteRepo()
	server := httptest.NewServer(NewHTTPHandler(repo).Content())
	defer server.Close()

	put := func(body string) domain.PageContent {
		t.Helper()
		req, _ := http.NewRequest(http.MethodPut, server.URL+"/content", strings.NewReader(body))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var content domain.PageContent
		if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
			t.Fatalf("decoding content: %v", err)
		}
		return content
	}

	first := put(`{"page":"home","sectionKey":"hero","value":"Welcome"}`)
	if first.Value != "Welcome" {
		t.Fatalf("unexpected value %q", first.Value)
	}

	second := put(`{"page":"home","sectionKey":"hero","value":"Hello"}`)
	if second.Value != "Hello" {
		t.Fatalf("expected overwritten value, got %q", second.Value)
	}
	if len(repo.content) != 1 {
		t.Fatalf("upsert must not create a second row, have %d", len(repo.content))
	}
}

func TestContentRequiresPageAndSectionKey(t *testing.T) {
	server := httptest.NewServer(NewHTTPHandler(newStubSiteRepo()).Content())
	defer server.Close()

	resp, err := http.Post(server.URL+"/content", "application/json",
		strings.NewReader(`{"page":"","sectionKey":"hero","value":"x"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestContentListAndDelete(t *testing.T) {
	repo := newStubSiteRepo()
	repo.UpsertContent(context.Background(), domain.PageContent{
		ID: uuid.New(), Page: "home", SectionKey: "hero", Value: "Welcome",
	})
	repo.UpsertContent(context.Background(), domain.PageContent{
		ID: uuid.New(), Page: "about", SectionKey: "intro", Value: "About us",
	})
	server := httptest.NewServer(NewHTTPHandler(repo).Content())
	defer server.Close()

	resp, err := http.Get(server.URL + "/content?page=home")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var items []domain.PageContent
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	resp.Body.Close()
	if len(items) != 1 || items[0].Page != "home" {
		t.Fatalf("expected only the home page entries, got %+v", items)
	}

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/content?page=home&sectionKey=hero", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(repo.content) != 1 {
		t.Fatalf("expected one entry left, have %d", len(repo.content))
	}
}
