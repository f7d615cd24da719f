// Package band manages the band micro-site: show listings and the content
// feed of posts, with drafts publishable at any time.
package band

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/httpx"
	"github.com/beatworks/workshop-dashboard/internal/repository"

	"github.com/google/uuid"
)

// Handler exposes shows at /shows and feed posts at /posts.
type Handler struct {
	repo repository.BandRepository
}

// NewHTTPHandler wraps the repository with the band routes.
func NewHTTPHandler(repo repository.BandRepository) *Handler {
	return &Handler{repo: repo}
}

// Shows returns the handler for the /shows routes.
func (h *Handler) Shows() http.Handler {
	return http.HandlerFunc(h.serveShows)
}

// Posts returns the handler for the /posts routes.
func (h *Handler) Posts() http.Handler {
	return http.HandlerFunc(h.servePosts)
}

type showPayload struct {
	Venue     *string    `json:"venue"`
	City      *string    `json:"city"`
	ShowDate  *time.Time `json:"showDate"`
	TicketURL *string    `json:"ticketUrl"`
}

func (h *Handler) serveShows(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/shows"), "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		items, err := h.repo.ListShows(r.Context())
		if err != nil {
			httpx.WriteError(w, "BAND", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	case rest == "" && r.Method == http.MethodPost:
		defer r.Body.Close()
		var payload showPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
			return
		}
		if payload.Venue == nil || strings.TrimSpace(*payload.Venue) == "" {
			httpx.WriteError(w, "BAND", domain.NewValidationError("venue is required"))
			return
		}
		if payload.ShowDate == nil {
			httpx.WriteError(w, "BAND", domain.NewValidationError("showDate is required"))
			return
		}
		created, err := h.repo.CreateShow(r.Context(), domain.Show{
			ID:        uuid.New(),
			Venue:     strings.TrimSpace(*payload.Venue),
			City:      payload.City,
			ShowDate:  *payload.ShowDate,
			TicketURL: payload.TicketURL,
		})
		if err != nil {
			httpx.WriteError(w, "BAND", err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, created)
	case rest != "":
		id, err := uuid.Parse(rest)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid show id: %v", err), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodPatch:
			h.updateShow(w, r, id)
		case http.MethodDelete:
			if err := h.repo.DeleteShow(r.Context(), id); err != nil {
				httpx.WriteError(w, "BAND", err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) updateShow(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()
	var payload showPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	show, err := h.repo.GetShow(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, "BAND", err)
		return
	}

	if payload.Venue != nil {
		venue := strings.TrimSpace(*payload.Venue)
		if venue == "" {
			httpx.WriteError(w, "BAND", domain.NewValidationError("venue cannot be empty"))
			return
		}
		show.Venue = venue
	}
	if payload.City != nil {
		show.City = payload.City
	}
	if payload.ShowDate != nil {
		show.ShowDate = *payload.ShowDate
	}
	if payload.TicketURL != nil {
		show.TicketURL = payload.TicketURL
	}

	updated, err := h.repo.UpdateShow(r.Context(), show)
	if err != nil {
		httpx.WriteError(w, "BAND", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

type postPayload struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	ImageURL  *string `json:"imageUrl"`
	Published *bool   `json:"published"`
}

func (h *Handler) servePosts(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/posts"), "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		publishedOnly := r.URL.Query().Get("published") == "true"
		items, err := h.repo.ListPosts(r.Context(), publishedOnly)
		if err != nil {
			httpx.WriteError(w, "BAND", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	case rest == "" && r.Method == http.MethodPost:
		h.createPost(w, r)
	case rest != "":
		id, err := uuid.Parse(rest)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid post id: %v", err), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			post, err := h.repo.GetPost(r.Context(), id)
			if err != nil {
				httpx.WriteError(w, "BAND", err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, post)
		case http.MethodPatch:
			h.updatePost(w, r, id)
		case http.MethodDelete:
			if err := h.repo.DeletePost(r.Context(), id); err != nil {
				httpx.WriteError(w, "BAND", err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var payload postPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}
	if payload.Title == nil || strings.TrimSpace(*payload.Title) == "" {
		httpx.WriteError(w, "BAND", domain.NewValidationError("title is required"))
		return
	}

	post := domain.BandPost{
		ID:       uuid.New(),
		Title:    strings.TrimSpace(*payload.Title),
		Body:     payload.Body,
		ImageURL: payload.ImageURL,
	}
	if payload.Published != nil && *payload.Published {
		now := time.Now().UTC()
		post.Published = true
		post.PublishedAt = &now
	}

	created, err := h.repo.CreatePost(r.Context(), post)
	if err != nil {
		httpx.WriteError(w, "BAND", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()
	var payload postPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	post, err := h.repo.GetPost(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, "BAND", err)
		return
	}

	if payload.Title != nil {
		title := strings.TrimSpace(*payload.Title)
		if title == "" {
			httpx.WriteError(w, "BAND", domain.NewValidationError("title cannot be empty"))
			return
		}
		post.Title = title
	}
	if payload.Body != nil {
		post.Body = payload.Body
	}
	if payload.ImageURL != nil {
		post.ImageURL = payload.ImageURL
	}
	if payload.Published != nil {
		// Publishing stamps the time once; re-publishing keeps the original
		// timestamp, and unpublishing clears it.
		if *payload.Published && !post.Published {
			now := time.Now().UTC()
			post.PublishedAt = &now
		}
		if !*payload.Published {
			post.PublishedAt = nil
		}
		post.Published = *payload.Published
	}

	updated, err := h.repo.UpdatePost(r.Context(), post)
	if err != nil {
		httpx.WriteError(w, "BAND", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}
