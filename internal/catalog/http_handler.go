// Package catalog exposes the pricing tiers and workshop locations shown on
// the public site.
package catalog

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

// Handler exposes pricing tiers at /pricing and locations at /locations.
type Handler struct {
	repo repository.CatalogRepository
}

// NewHTTPHandler wraps the repository with the catalog routes.
func NewHTTPHandler(repo repository.CatalogRepository) *Handler {
	return &Handler{repo: repo}
}

// Pricing returns the handler for the /pricing routes.
func (h *Handler) Pricing() http.Handler {
	return http.HandlerFunc(h.servePricing)
}

// Locations returns the handler for the /locations routes.
func (h *Handler) Locations() http.Handler {
	return http.HandlerFunc(h.serveLocations)
}

func (h *Handler) servePricing(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/pricing"), "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		items, err := h.repo.ListTiers(r.Context())
		if err != nil {
			httpx.WriteError(w, "CATALOG", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	case rest == "" && r.Method == http.MethodPost:
		h.createTier(w, r)
	case rest != "":
		id, err := uuid.Parse(rest)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid tier id: %v", err), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			tier, err := h.repo.GetTier(r.Context(), id)
			if err != nil {
				httpx.WriteError(w, "CATALOG", err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, tier)
		case http.MethodPatch:
			h.updateTier(w, r, id)
		case http.MethodDelete:
			if err := h.repo.DeleteTier(r.Context(), id); err != nil {
				httpx.WriteError(w, "CATALOG", err)
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

type tierPayload struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	PriceCents  *int     `json:"priceCents"`
	Features    []string `json:"features"`
	SortOrder   *int     `json:"sortOrder"`
}

func (h *Handler) createTier(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var payload tierPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		httpx.WriteError(w, "CATALOG", domain.NewValidationError("name is required"))
		return
	}
	if payload.PriceCents == nil || *payload.PriceCents < 0 {
		httpx.WriteError(w, "CATALOG", domain.NewValidationError("priceCents must be a non-negative integer"))
		return
	}

	tier := domain.PricingTier{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(*payload.Name),
		Description: payload.Description,
		PriceCents:  *payload.PriceCents,
		Features:    payload.Features,
	}
	if payload.SortOrder != nil {
		tier.SortOrder = *payload.SortOrder
	}

	created, err := h.repo.CreateTier(r.Context(), tier)
	if err != nil {
		httpx.WriteError(w, "CATALOG", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateTier(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()
	var payload tierPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	tier, err := h.repo.GetTier(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, "CATALOG", err)
		return
	}
	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		if name == "" {
			httpx.WriteError(w, "CATALOG", domain.NewValidationError("name cannot be empty"))
			return
		}
		tier.Name = name
	}
	if payload.Description != nil {
		tier.Description = payload.Description
	}
	if payload.PriceCents != nil {
		if *payload.PriceCents < 0 {
			httpx.WriteError(w, "CATALOG", domain.NewValidationError("priceCents must be a non-negative integer"))
			return
		}
		tier.PriceCents = *payload.PriceCents
	}
	if payload.Features != nil {
		tier.Features = payload.Features
	}
	if payload.SortOrder != nil {
		tier.SortOrder = *payload.SortOrder
	}

	updated, err := h.repo.UpdateTier(r.Context(), tier)
	if err != nil {
		httpx.WriteError(w, "CATALOG", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) serveLocations(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/locations"), "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		items, err := h.repo.ListLocations(r.Context())
		if err != nil {
			httpx.WriteError(w, "CATALOG", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	case rest == "" && r.Method == http.MethodPost:
		h.createLocation(w, r)
	case rest != "":
		id, err := uuid.Parse(rest)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid location id: %v", err), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			loc, err := h.repo.GetLocation(r.Context(), id)
			if err != nil {
				httpx.WriteError(w, "CATALOG", err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, loc)
		case http.MethodPatch:
			h.updateLocation(w, r, id)
		case http.MethodDelete:
			if err := h.repo.DeleteLocation(r.Context(), id); err != nil {
				httpx.WriteError(w, "CATALOG", err)
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

type locationPayload struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Capacity *int    `json:"capacity"`
	Notes    *string `json:"notes"`
}

func (h *Handler) createLocation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var payload locationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		httpx.WriteError(w, "CATALOG", domain.NewValidationError("name is required"))
		return
	}

	loc := domain.Location{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(*payload.Name),
		Address:  payload.Address,
		Capacity: payload.Capacity,
		Notes:    payload.Notes,
	}

	created, err := h.repo.CreateLocation(r.Context(), loc)
	if err != nil {
		httpx.WriteError(w, "CATALOG", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateLocation(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()
	var payload locationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	loc, err := h.repo.GetLocation(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, "CATALOG", err)
		return
	}
	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		if name == "" {
			httpx.WriteError(w, "CATALOG", domain.NewValidationError("name cannot be empty"))
			return
		}
		loc.Name = name
	}
	if payload.Address != nil {
		loc.Address = payload.Address
	}
	if payload.Capacity != nil {
		loc.Capacity = payload.Capacity
	}
	if payload.Notes != nil {
		loc.Notes = payload.Notes
	}

	updated, err := h.repo.UpdateLocation(r.Context(), loc)
	if err != nil {
		httpx.WriteError(w, "CATALOG", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}
