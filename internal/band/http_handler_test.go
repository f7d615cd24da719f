package band

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

type stubBandRepo struct {
	shows     []domain.Show
	posts     []domain.BandPost
	showGets  int
	showLists int
}

func (s *stubBandRepo) CreateShow(_ context.Context, show domain.Show) (domain.Show, error) {
	show.CreatedAt = time.Now().UTC()
	s.shows = append(s.shows, show)
	return show, nil
}

func (s *stubBandRepo) GetShow(_ context.Context, id uuid.UUID) (domain.Show, error) {
	s.showGets++
	for _, show := range s.shows {
		if show.ID == id {
			return show, nil
		}
	}
	return domain.Show{}, domain.ErrNotFound
}

func (s *stubBandRepo) ListShows(_ context.Context) ([]domain.Show, error) {
	s.showLists++
	return s.shows, nil
}

func (s *stubBandRepo) UpdateShow(_ context.Context, show domain.Show) (domain.Show, error) {
	for i := range s.shows {
		if s.shows[i].ID == show.ID {
			s.shows[i] = show
			return show, nil
		}
	}
	return domain.Show{}, domain.ErrNotFound
}

func (s *stubBandRepo) DeleteShow(_ context.Context, id uuid.UUID) error {
	for i := range s.shows {
		if s.shows[i].ID == id {
			s.shows = append(s.shows[:i], s.shows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubBandRepo) CreatePost(_ context.Context, post domain.BandPost) (domain.BandPost, error) {
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	s.posts = append(s.posts, post)
	return post, nil
}

func (s *stubBandRepo) GetPost(_ context.Context, id uuid.UUID) (domain.BandPost, error) {
	for _, post := range s.posts {
		if post.ID == id {
			return post, nil
		}
	}
	return domain.BandPost{}, domain.ErrNotFound
}

func (s *stubBandRepo) ListPosts(_ context.Context, publishedOnly bool) ([]domain.BandPost, error) {
	if !publishedOnly {
		return s.posts, nil
	}
	out := []domain.BandPost{}
	for _, post := range s.posts {
		if post.Published {
			out = append(out, post)
		}
	}
	return out, nil
}

func (s *stubBandRepo) UpdatePost(_ context.Context, post domain.BandPost) (domain.BandPost, error) {
	for i := range s.posts {
		if s.posts[i].ID == post.ID {
			post.UpdatedAt = time.Now().UTC()
			s.posts[i] = post
			return post, nil
		}
	}
	return domain.BandPost{}, domain.ErrNotFound
}

func (s *stubBandRepo) DeletePost(_ context.Context, id uuid.UUID) error {
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

var _ repository.BandRepository = (*stubBandRepo)(nil)

func seedShow(repo *stubBandRepo, venue string) domain.Show {
	city := "Leeds"
	show, _ := repo.CreateShow(context.Background(), domain.Show{
		ID:       uuid.New(),
		Venue:    venue,
		City:     &city,
		ShowDate: time.Date(2026, 10, 3, 20, 0, 0, 0, time.UTC),
	})
	return show
}

func TestCreateShowRequiresVenueAndDate(t *testing.T) {
	server := httptest.NewServer(NewHTTPHandler(&stubBandRepo{}).Shows())
	defer server.Close()

	for _, body := range []string{
		`{"showDate":"2026-10-03T20:00:00Z"}`,
		`{"venue":"The Brudenell"}`,
	} {
		resp, err := http.Post(server.URL+"/shows", "application/json", bytes.NewBufferString(body))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestUpdateShowFetchesByID(t *testing.T) {
	repo := &stubBandRepo{}
	seedShow(repo, "The Brudenell")
	target := seedShow(repo, "Belgrave Music Hall")
	server := httptest.NewServer(NewHTTPHandler(repo).Shows())
	defer server.Close()

	body := bytes.NewBufferString(`{"ticketUrl":"https://tickets.example/belgrave"}`)
	req, _ := http.NewRequest(http.MethodPatch, server.URL+"/shows/"+target.ID.String(), body)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var updated domain.Show
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decoding show: %v", err)
	}
	if updated.TicketURL == nil || *updated.TicketURL != "https://tickets.example/belgrave" {
		t.Fatalf("ticket url not applied: %+v", updated)
	}
	if updated.Venue != "Belgrave Music Hall" || updated.City == nil || *updated.City != "Leeds" {
		t.Fatalf("untouched fields must survive a patch: %+v", updated)
	}
	if repo.showGets != 1 || repo.showLists != 0 {
		t.Fatalf("patch must load the one show by id, got %d gets and %d lists",
			repo.showGets, repo.showLists)
	}
}

func TestUpdateShowUnknownIDReturns404(t *testing.T) {
	server := httptest.NewServer(NewHTTPHandler(&stubBandRepo{}).Shows())
	defer server.Close()

	body := bytes.NewBufferString(`{"venue":"Anywhere"}`)
	req, _ := http.NewRequest(http.MethodPatch, server.URL+"/shows/"+uuid.NewString(), body)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestPublishPostStampsTimestampOnce(t *testing.T) {
	repo := &stubBandRepo{}
	post, _ := repo.CreatePost(context.Background(), domain.BandPost{
		ID:    uuid.New(),
		Title: "New single out",
	})
	server := httptest.NewServer(NewHTTPHandler(repo).Posts())
	defer server.Close()

	patch := func(body string) domain.BandPost {
		t.Helper()
		req, _ := http.NewRequest(http.MethodPatch, server.URL+"/posts/"+post.ID.String(),
			bytes.NewBufferString(body))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var out domain.BandPost
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decoding post: %v", err)
		}
		return out
	}

	published := patch(`{"published":true}`)
	if !published.Published || published.PublishedAt == nil {
		t.Fatalf("publishing must stamp publishedAt: %+v", published)
	}
	stamp := *published.PublishedAt

	republished := patch(`{"published":true}`)
	if republished.PublishedAt == nil || !republished.PublishedAt.Equal(stamp) {
		t.Fatalf("re-publishing must keep the original timestamp")
	}

	unpublished := patch(`{"published":false}`)
	if unpublished.Published || unpublished.PublishedAt != nil {
		t.Fatalf("unpublishing must clear publishedAt: %+v", unpublished)
	}
}

func TestListPostsPublishedFilter(t *testing.T) {
	repo := &stubBandRepo{}
	now := time.Now().UTC()
	repo.CreatePost(context.Background(), domain.BandPost{ID: uuid.New(), Title: "Draft"})
	repo.CreatePost(context.Background(), domain.BandPost{
		ID: uuid.New(), Title: "Live", Published: true, PublishedAt: &now,
	})
	server := httptest.NewServer(NewHTTPHandler(repo).Posts())
	defer server.Close()

	resp, err := http.Get(server.URL + "/posts?published=true")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	var posts []domain.BandPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		t.Fatalf("decoding posts: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Live" {
		t.Fatalf("expected only the published post, got %+v", posts)
	}
}
