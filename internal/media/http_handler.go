package media

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/beatworks/workshop-dashboard/internal/httpx"

	"github.com/google/uuid"
)

const maxUploadBytes = 32 << 20

// Handler exposes the gallery over HTTP at /media.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with the /media routes.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/media"), "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		items, err := h.service.List(r.Context())
		if err != nil {
			httpx.WriteError(w, "MEDIA", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	case rest == "" && r.Method == http.MethodPost:
		h.handleUpload(w, r)
	case rest != "":
		id, err := uuid.Parse(rest)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid media id: %v", err), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodPatch:
			h.handleUpdate(w, r, id)
		case http.MethodDelete:
			if err := h.service.Delete(r.Context(), id); err != nil {
				httpx.WriteError(w, "MEDIA", err)
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

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	header := headers[0]

	file, err := header.Open()
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read upload: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read upload: %v", err), http.StatusBadRequest)
		return
	}

	var caption *string
	if value := strings.TrimSpace(r.FormValue("caption")); value != "" {
		caption = &value
	}
	sortOrder := 0
	if raw := strings.TrimSpace(r.FormValue("sortOrder")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid sortOrder: %v", err), http.StatusBadRequest)
			return
		}
		sortOrder = parsed
	}

	item, err := h.service.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), data, caption, sortOrder)
	if err != nil {
		httpx.WriteError(w, "MEDIA", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, item)
}

type updatePayload struct {
	Caption   *string `json:"caption"`
	SortOrder int     `json:"sortOrder"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	item, err := h.service.UpdateCaption(r.Context(), id, payload.Caption, payload.SortOrder)
	if err != nil {
		httpx.WriteError(w, "MEDIA", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}
