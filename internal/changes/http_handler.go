package changes

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/httpx"

	"github.com/google/uuid"
)

const maxUploadBytes = 32 << 20

// Handler exposes the change lifecycle manager over HTTP at /changes.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with the /changes routes.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/changes"), "/")
	segments := []string{}
	if rest != "" {
		segments = strings.Split(rest, "/")
	}

	switch {
	case len(segments) == 0 && r.Method == http.MethodGet:
		h.handleList(w, r)
	case len(segments) == 0 && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case len(segments) == 1:
		id, err := uuid.Parse(segments[0])
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid change id: %v", err), http.StatusBadRequest)
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
	case len(segments) == 2 && segments[1] == "feedback":
		id, err := uuid.Parse(segments[0])
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid change id: %v", err), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleListFeedback(w, r, id)
		case http.MethodPost:
			h.handleAddFeedback(w, r, id)
		case http.MethodDelete:
			h.handleDeleteFeedback(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

type createChangePayload struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	ViewURL       string   `json:"viewUrl"`
	AddedBy       string   `json:"addedBy"`
	FilesChanged  []string `json:"filesChanged"`
	ChangeDetails []string `json:"changeDetails"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input := CreateChangeInput{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
			return
		}
		input.Title = r.FormValue("title")
		input.Description = r.FormValue("description")
		input.Category = r.FormValue("category")
		input.ViewURL = r.FormValue("viewUrl")
		input.AddedBy = r.FormValue("addedBy")
		input.FilesChanged = splitLines(r.FormValue("filesChanged"))
		input.ChangeDetails = splitLines(r.FormValue("changeDetails"))

		// Current clients send repeated "screenshots" fields; the singular
		// "screenshot" field is the legacy form.
		files := r.MultipartForm.File["screenshots"]
		files = append(files, r.MultipartForm.File["screenshot"]...)
		for _, header := range files {
			upload, err := readUpload(header)
			if err != nil {
				http.Error(w, fmt.Sprintf("failed to read upload: %v", err), http.StatusBadRequest)
				return
			}
			input.Attachments = append(input.Attachments, upload)
		}
	} else {
		defer r.Body.Close()
		var payload createChangePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
			return
		}
		input.Title = payload.Title
		input.Description = payload.Description
		input.Category = payload.Category
		input.ViewURL = payload.ViewURL
		input.AddedBy = payload.AddedBy
		input.FilesChanged = payload.FilesChanged
		input.ChangeDetails = payload.ChangeDetails
	}

	change, err := h.service.CreateChange(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, "CHANGES", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, change)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	deletedOnly := query.Get("deleted") == "true"
	var status *domain.ChangeStatus
	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		value := domain.ChangeStatus(raw)
		if !value.Valid() {
			http.Error(w, fmt.Sprintf("unknown status %q", raw), http.StatusBadRequest)
			return
		}
		status = &value
	}

	items, err := h.service.ListChanges(r.Context(), status, deletedOnly)
	if err != nil {
		httpx.WriteError(w, "CHANGES", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	change, feedback, err := h.service.GetChange(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, "CHANGES", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"change":   change,
		"feedback": feedback,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()
	var input UpdateChangeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	change, err := h.service.UpdateChange(r.Context(), id, input)
	if err != nil {
		httpx.WriteError(w, "CHANGES", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, change)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	permanent := r.URL.Query().Get("permanent") == "true"
	if err := h.service.DeleteChange(r.Context(), id, permanent); err != nil {
		httpx.WriteError(w, "CHANGES", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"deleted":   true,
		"permanent": permanent,
	})
}

func (h *Handler) handleListFeedback(w http.ResponseWriter, r *http.Request, changeID uuid.UUID) {
	items, err := h.service.ListFeedback(r.Context(), changeID)
	if err != nil {
		httpx.WriteError(w, "CHANGES", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleAddFeedback(w http.ResponseWriter, r *http.Request, changeID uuid.UUID) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	text := r.FormValue("feedbackText")
	var attachment *AttachmentUpload
	if headers := r.MultipartForm.File["screenshot"]; len(headers) > 0 {
		upload, err := readUpload(headers[0])
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to read upload: %v", err), http.StatusBadRequest)
			return
		}
		attachment = &upload
	}

	feedback, err := h.service.AddFeedback(r.Context(), changeID, text, attachment)
	if err != nil {
		httpx.WriteError(w, "CHANGES", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, feedback)
}

func (h *Handler) handleDeleteFeedback(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("feedbackId"))
	if raw == "" {
		http.Error(w, "feedbackId is required", http.StatusBadRequest)
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid feedbackId: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteFeedback(r.Context(), id); err != nil {
		httpx.WriteError(w, "CHANGES", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func readUpload(header *multipart.FileHeader) (AttachmentUpload, error) {
	file, err := header.Open()
	if err != nil {
		return AttachmentUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return AttachmentUpload{}, err
	}
	return AttachmentUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func splitLines(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
