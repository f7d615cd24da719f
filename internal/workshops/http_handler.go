package workshops

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/httpx"

	"github.com/google/uuid"
)

// Handler exposes the inquiry funnel over HTTP at /workshops.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with the /workshops routes.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/workshops"), "/")
	segments := []string{}
	if rest != "" {
		segments = strings.Split(rest, "/")
	}

	switch {
	case len(segments) == 0 && r.Method == http.MethodGet:
		h.handleList(w, r)
	case len(segments) == 0 && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case len(segments) == 1 && segments[0] == "export" && r.Method == http.MethodGet:
		h.handleExport(w, r)
	case len(segments) == 1:
		id, err := uuid.Parse(segments[0])
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid request id: %v", err), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodPatch:
			h.handleUpdate(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case len(segments) == 2 && segments[1] == "quote-email" && r.Method == http.MethodPost:
		id, err := uuid.Parse(segments[0])
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid request id: %v", err), http.StatusBadRequest)
			return
		}
		h.handleQuoteEmail(w, r, id)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var input CreateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	req, err := h.service.CreateRequest(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, "WORKSHOPS", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var status *domain.WorkshopStatus
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		value := domain.WorkshopStatus(raw)
		if !value.Valid() {
			http.Error(w, fmt.Sprintf("unknown status %q", raw), http.StatusBadRequest)
			return
		}
		status = &value
	}

	items, err := h.service.ListRequests(r.Context(), status)
	if err != nil {
		httpx.WriteError(w, "WORKSHOPS", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	req, err := h.service.GetRequest(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, "WORKSHOPS", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()
	var input UpdateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	req, err := h.service.UpdateRequest(r.Context(), id, input)
	if err != nil {
		httpx.WriteError(w, "WORKSHOPS", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.service.DeleteRequest(r.Context(), id); err != nil {
		httpx.WriteError(w, "WORKSHOPS", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Handler) handleQuoteEmail(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	email, req, err := h.service.DraftQuoteEmail(r.Context(), id)
	if err != nil {
		// A failing model call is an upstream failure, not a storage one.
		if !domain.IsValidation(err) && !errors.Is(err, domain.ErrNotFound) {
			log.Printf("[WORKSHOPS] quote draft failed for %s: %v", id, err)
			http.Error(w, "quote generation failed", http.StatusBadGateway)
			return
		}
		httpx.WriteError(w, "WORKSHOPS", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"email":   email,
		"request": req,
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	file, err := h.service.ExportXLSX(r.Context())
	if err != nil {
		httpx.WriteError(w, "WORKSHOPS", err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("workshop-requests-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := file.WriteTo(w); err != nil {
		// Headers are already sent, so the failure can only be logged.
		log.Printf("[WORKSHOPS] writing export: %v", err)
	}
}
