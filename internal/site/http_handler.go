// Package site manages the editable content of the public pages: keyed text
// sections, the about-page team roster, testimonials, and the FAQ.
package site

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/httpx"
	"github.com/beatworks/workshop-dashboard/internal/repository"

	"github.com/google/uuid"
)

// Handler exposes the site content routes.
type Handler struct {
	repo repository.SiteRepository
}

// NewHTTPHandler wraps the repository with the site routes.
func NewHTTPHandler(repo repository.SiteRepository) *Handler {
	return &Handler{repo: repo}
}

// Content returns the handler for the /content routes.
func (h *Handler) Content() http.Handler {
	return http.HandlerFunc(h.serveContent)
}

// Team returns the handler for the /team routes.
func (h *Handler) Team() http.Handler {
	return http.HandlerFunc(h.serveTeam)
}

// Testimonials returns the handler for the /testimonials routes.
func (h *Handler) Testimonials() http.Handler {
	return http.HandlerFunc(h.serveTestimonials)
}

// FAQ returns the handler for the /faq routes.
func (h *Handler) FAQ() http.Handler {
	return http.HandlerFunc(h.serveFAQ)
}

type contentPayload struct {
	Page       string `json:"page"`
	SectionKey string `json:"sectionKey"`
	Value      string `json:"value"`
}

func (h *Handler) serveContent(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := strings.TrimSpace(r.URL.Query().Get("page"))
		if page == "" {
			http.Error(w, "page is required", http.StatusBadRequest)
			return
		}
		items, err := h.repo.ListContent(r.Context(), page)
		if err != nil {
			httpx.WriteError(w, "SITE", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	case http.MethodPut, http.MethodPost:
		defer r.Body.Close()
		var payload contentPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
			return
		}
		payload.Page = strings.TrimSpace(payload.Page)
		payload.SectionKey = strings.TrimSpace(payload.SectionKey)
		if payload.Page == "" || payload.SectionKey == "" {
			httpx.WriteError(w, "SITE", domain.NewValidationError("page and sectionKey are required"))
			return
		}
		content, err := h.repo.UpsertContent(r.Context(), domain.PageContent{
			ID:         uuid.New(),
			Page:       payload.Page,
			SectionKey: payload.SectionKey,
			Value:      payload.Value,
		})
		if err != nil {
			httpx.WriteError(w, "SITE", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, content)
	case http.MethodDelete:
		page := strings.TrimSpace(r.URL.Query().Get("page"))
		sectionKey := strings.TrimSpace(r.URL.Query().Get("sectionKey"))
		if page == "" || sectionKey == "" {
			http.Error(w, "page and sectionKey are required", http.StatusBadRequest)
			return
		}
		if err := h.repo.DeleteContent(r.Context(), page, sectionKey); err != nil {
			httpx.WriteError(w, "SITE", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type teamMemberPayload struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Bio       *string `json:"bio"`
	PhotoURL  *string `json:"photoUrl"`
	SortOrder *int    `json:"sortOrder"`
}

func (h *Handler) serveTeam(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/team"), "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		items, err := h.repo.ListTeamMembers(r.Context())
		if err != nil {
			httpx.WriteError(w, "SITE", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	case rest == "" && r.Method == http.MethodPost:
		defer r.Body.Close()
		var payload teamMemberPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
			return
		}
		if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
			httpx.WriteError(w, "SITE", domain.NewValidationError("name is required"))
			return
		}
		member := domain.TeamMember{
			ID:       uuid.New(),
			Name:     strings.TrimSpace(*payload.Name),
			Role:     payload.Role,
			Bio:      payload.Bio,
			PhotoURL: payload.PhotoURL,
		}
		if payload.SortOrder != nil {
			member.SortOrder = *payload.SortOrder
		}
		created, err := h.repo.CreateTeamMember(r.Context(), member)
		if err != nil {
			httpx.WriteError(w, "SITE", err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, created)
	case rest != "":
		id, err := uuid.Parse(rest)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid member id: %v", err), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodPatch:
			h.updateTeamMember(w, r, id)
		case http.MethodDelete:
			if err := h.repo.DeleteTeamMember(r.Context(), id); err != nil {
				httpx.WriteError(w, "SITE", err)
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

func (h *Handler) updateTeamMember(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()
	var payload teamMemberPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	members, err := h.repo.ListTeamMembers(r.Context())
	if err != nil {
		httpx.WriteError(w, "SITE", err)
		return
	}
	var member *domain.TeamMember
	for i := range members {
		if members[i].ID == id {
			member = &members[i]
			break
		}
	}
	if member == nil {
		httpx.WriteError(w, "SITE", domain.ErrNotFound)
		return
	}

	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		if name == "" {
			httpx.WriteError(w, "SITE", domain.NewValidationError("name cannot be empty"))
			return
		}
		member.Name = name
	}
	if payload.Role != nil {
		member.Role = payload.Role
	}
	if payload.Bio != nil {
		member.Bio = payload.Bio
	}
	if payload.PhotoURL != nil {
		member.PhotoURL = payload.PhotoURL
	}
	if payload.SortOrder != nil {
		member.SortOrder = *payload.SortOrder
	}

	updated, err := h.repo.UpdateTeamMember(r.Context(), *member)
	if err != nil {
		httpx.WriteError(w, "SITE", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

type testimonialPayload struct {
	Author    string  `json:"author"`
	Quote     string  `json:"quote"`
	Context   *string `json:"context"`
	SortOrder int     `json:"sortOrder"`
}

func (h *Handler) serveTestimonials(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/testimonials"), "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		items, err := h.repo.ListTestimonials(r.Context())
		if err != nil {
			httpx.WriteError(w, "SITE", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	case rest == "" && r.Method == http.MethodPost:
		defer r.Body.Close()
		var payload testimonialPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
			return
		}
		payload.Author = strings.TrimSpace(payload.Author)
		payload.Quote = strings.TrimSpace(payload.Quote)
		if payload.Author == "" || payload.Quote == "" {
			httpx.WriteError(w, "SITE", domain.NewValidationError("author and quote are required"))
			return
		}
		created, err := h.repo.CreateTestimonial(r.Context(), domain.Testimonial{
			ID:        uuid.New(),
			Author:    payload.Author,
			Quote:     payload.Quote,
			Context:   payload.Context,
			SortOrder: payload.SortOrder,
		})
		if err != nil {
			httpx.WriteError(w, "SITE", err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, created)
	case rest != "" && r.Method == http.MethodDelete:
		id, err := uuid.Parse(rest)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid testimonial id: %v", err), http.StatusBadRequest)
			return
		}
		if err := h.repo.DeleteTestimonial(r.Context(), id); err != nil {
			httpx.WriteError(w, "SITE", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type faqPayload struct {
	Question  *string `json:"question"`
	Answer    *string `json:"answer"`
	SortOrder *int    `json:"sortOrder"`
}

func (h *Handler) serveFAQ(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/faq"), "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		items, err := h.repo.ListFAQEntries(r.Context())
		if err != nil {
			httpx.WriteError(w, "SITE", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	case rest == "" && r.Method == http.MethodPost:
		defer r.Body.Close()
		var payload faqPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
			return
		}
		if payload.Question == nil || strings.TrimSpace(*payload.Question) == "" ||
			payload.Answer == nil || strings.TrimSpace(*payload.Answer) == "" {
			httpx.WriteError(w, "SITE", domain.NewValidationError("question and answer are required"))
			return
		}
		entry := domain.FAQEntry{
			ID:       uuid.New(),
			Question: strings.TrimSpace(*payload.Question),
			Answer:   strings.TrimSpace(*payload.Answer),
		}
		if payload.SortOrder != nil {
			entry.SortOrder = *payload.SortOrder
		}
		created, err := h.repo.CreateFAQEntry(r.Context(), entry)
		if err != nil {
			httpx.WriteError(w, "SITE", err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, created)
	case rest != "":
		id, err := uuid.Parse(rest)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid faq id: %v", err), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodPatch:
			h.updateFAQEntry(w, r, id)
		case http.MethodDelete:
			if err := h.repo.DeleteFAQEntry(r.Context(), id); err != nil {
				httpx.WriteError(w, "SITE", err)
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

func (h *Handler) updateFAQEntry(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()
	var payload faqPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	entries, err := h.repo.ListFAQEntries(r.Context())
	if err != nil {
		httpx.WriteError(w, "SITE", err)
		return
	}
	var entry *domain.FAQEntry
	for i := range entries {
		if entries[i].ID == id {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		httpx.WriteError(w, "SITE", domain.ErrNotFound)
		return
	}

	if payload.Question != nil {
		question := strings.TrimSpace(*payload.Question)
		if question == "" {
			httpx.WriteError(w, "SITE", domain.NewValidationError("question cannot be empty"))
			return
		}
		entry.Question = question
	}
	if payload.Answer != nil {
		answer := strings.TrimSpace(*payload.Answer)
		if answer == "" {
			httpx.WriteError(w, "SITE", domain.NewValidationError("answer cannot be empty"))
			return
		}
		entry.Answer = answer
	}
	if payload.SortOrder != nil {
		entry.SortOrder = *payload.SortOrder
	}

	updated, err := h.repo.UpdateFAQEntry(r.Context(), *entry)
	if err != nil {
		httpx.WriteError(w, "SITE", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}
