// Package changes implements the change review and feedback workflow: session
// changes move through a review lifecycle with soft delete, restore, and a
// permanent delete that cascades to feedback rows and externally stored
// screenshots.
package changes

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/beatworks/workshop-dashboard/internal/blobstore"
	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/repository"

	"github.com/google/uuid"
)

// Service is the change lifecycle manager: the sole mutator of session-change
// and feedback state, and the sole caller of the blob store on their behalf.
type Service struct {
	repo  repository.ChangeRepository
	blobs blobstore.Store
}

// NewService wires the lifecycle manager.
func NewService(repo repository.ChangeRepository, blobs blobstore.Store) *Service {
	return &Service{repo: repo, blobs: blobs}
}

// AttachmentUpload is a raw screenshot payload submitted with a change or a
// feedback item.
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateChangeInput carries the fields accepted when submitting a change.
type CreateChangeInput struct {
	Title         string
	Description   string
	Category      string
	ViewURL       string
	AddedBy       string
	FilesChanged  []string
	ChangeDetails []string
	Attachments   []AttachmentUpload
}

// CreateChange validates the submission, uploads accepted screenshots, and
// persists the new change with status pending. Zero-byte files are skipped
// silently; non-image files are rejected individually without aborting the
// rest of the submission.
func (s *Service) CreateChange(ctx context.Context, input CreateChangeInput) (domain.SessionChange, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.SessionChange{}, domain.NewValidationError("title is required")
	}

	change := domain.SessionChange{
		ID:            uuid.New(),
		Title:         title,
		Description:   optional(input.Description),
		Category:      optional(input.Category),
		ViewURL:       optional(input.ViewURL),
		FilesChanged:  input.FilesChanged,
		ChangeDetails: input.ChangeDetails,
		Status:        domain.ChangeStatusPending,
		AddedBy:       strings.TrimSpace(input.AddedBy),
	}
	if change.AddedBy == "" {
		change.AddedBy = domain.DefaultAddedBy
	}

	for _, upload := range input.Attachments {
		if len(upload.Data) == 0 {
			continue
		}
		if !strings.HasPrefix(upload.ContentType, "image/") {
			log.Printf("[CHANGES] rejected non-image upload %q (%s)", upload.FileName, upload.ContentType)
			continue
		}
		url, storagePath, err := s.uploadScreenshot(ctx, change.ID, upload)
		if err != nil {
			return domain.SessionChange{}, fmt.Errorf("upload screenshot %q: %w", upload.FileName, err)
		}
		change.ScreenshotURLs = append(change.ScreenshotURLs, url)
		change.ScreenshotPaths = append(change.ScreenshotPaths, storagePath)
	}

	created, err := s.repo.Create(ctx, change)
	if err != nil {
		return domain.SessionChange{}, err
	}
	return created, nil
}

// ListChanges returns changes in one of three mutually exclusive modes:
// soft-deleted rows only, rows matching a status, or all live rows. All modes
// order by creation time ascending. The status mode re-checks the deletion
// timestamp on the retrieved rows rather than relying on the query.
func (s *Service) ListChanges(ctx context.Context, status *domain.ChangeStatus, deletedOnly bool) ([]domain.SessionChange, error) {
	if deletedOnly {
		return s.repo.ListDeleted(ctx)
	}
	if status != nil {
		rows, err := s.repo.ListByStatus(ctx, *status)
		if err != nil {
			return nil, err
		}
		live := make([]domain.SessionChange, 0, len(rows))
		for _, row := range rows {
			if row.Deleted() {
				continue
			}
			live = append(live, row)
		}
		return live, nil
	}
	return s.repo.ListActive(ctx)
}

// GetChange returns a change together with its feedback, newest feedback first.
func (s *Service) GetChange(ctx context.Context, id uuid.UUID) (domain.SessionChange, []domain.SessionChangeFeedback, error) {
	change, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.SessionChange{}, nil, err
	}
	feedback, err := s.repo.ListFeedback(ctx, id)
	if err != nil {
		return domain.SessionChange{}, nil, err
	}
	return change, feedback, nil
}

// UpdateChangeInput is a partial patch; nil fields are left untouched.
// Restore is exclusive: when set, only the deletion timestamp is cleared and
// every other field in the payload is ignored.
type UpdateChangeInput struct {
	Title           *string              `json:"title"`
	Description     *string              `json:"description"`
	Category        *string              `json:"category"`
	ViewURL         *string              `json:"viewUrl"`
	AddedBy         *string              `json:"addedBy"`
	FilesChanged    *[]string            `json:"filesChanged"`
	ChangeDetails   *[]string            `json:"changeDetails"`
	ScreenshotURLs  *[]string            `json:"screenshotUrls"`
	ScreenshotPaths *[]string            `json:"screenshotPaths"`
	Status          *domain.ChangeStatus `json:"status"`
	Restore         bool                 `json:"restore"`
}

// UpdateChange applies the patch (or restores the row) and returns the
// updated change.
func (s *Service) UpdateChange(ctx context.Context, id uuid.UUID, input UpdateChangeInput) (domain.SessionChange, error) {
	if input.Restore {
		return s.repo.Restore(ctx, id)
	}

	change, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.SessionChange{}, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return domain.SessionChange{}, domain.NewValidationError("title cannot be empty")
		}
		change.Title = title
	}
	if input.Description != nil {
		change.Description = optional(*input.Description)
	}
	if input.Category != nil {
		change.Category = optional(*input.Category)
	}
	if input.ViewURL != nil {
		change.ViewURL = optional(*input.ViewURL)
	}
	if input.AddedBy != nil {
		change.AddedBy = *input.AddedBy
	}
	if input.FilesChanged != nil {
		change.FilesChanged = *input.FilesChanged
	}
	if input.ChangeDetails != nil {
		change.ChangeDetails = *input.ChangeDetails
	}
	if input.ScreenshotURLs != nil {
		change.ScreenshotURLs = *input.ScreenshotURLs
	}
	if input.ScreenshotPaths != nil {
		change.ScreenshotPaths = *input.ScreenshotPaths
	}
	// URLs and paths stay index-aligned; a patch may not break the pairing.
	if (input.ScreenshotURLs != nil || input.ScreenshotPaths != nil) &&
		len(change.ScreenshotURLs) != len(change.ScreenshotPaths) {
		return domain.SessionChange{}, domain.NewValidationError(
			"screenshotUrls and screenshotPaths must have the same length")
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return domain.SessionChange{}, domain.NewValidationError("unknown status %q", *input.Status)
		}
		change.Status = *input.Status
	}

	return s.repo.Update(ctx, change)
}

// DeleteChange soft-deletes by default. A permanent delete first attempts to
// remove every screenshot of the change and of its feedback from the blob
// store (failures are logged and skipped), then deletes the feedback rows and
// the change row; the row deletions are authoritative and not best-effort.
func (s *Service) DeleteChange(ctx context.Context, id uuid.UUID, permanent bool) error {
	change, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !permanent {
		return s.repo.SoftDelete(ctx, id, time.Now().UTC())
	}

	s.deleteBlobs(ctx, change.Attachments())

	feedback, err := s.repo.ListFeedback(ctx, id)
	if err != nil {
		return err
	}
	for _, item := range feedback {
		s.deleteBlobs(ctx, item.Attachments())
	}

	return s.repo.DeletePermanently(ctx, id)
}

// AddFeedback attaches a reviewer response to a change. At least one of text
// or attachment is required; an attachment must be image-typed.
func (s *Service) AddFeedback(ctx context.Context, changeID uuid.UUID, text string, attachment *AttachmentUpload) (domain.SessionChangeFeedback, error) {
	text = strings.TrimSpace(text)
	if attachment != nil && len(attachment.Data) == 0 {
		attachment = nil
	}
	if text == "" && attachment == nil {
		return domain.SessionChangeFeedback{}, domain.NewValidationError("feedback requires text or a screenshot")
	}

	feedback := domain.SessionChangeFeedback{
		ID:           uuid.New(),
		ChangeID:     changeID,
		FeedbackText: optional(text),
	}

	if attachment != nil {
		if !strings.HasPrefix(attachment.ContentType, "image/") {
			return domain.SessionChangeFeedback{}, domain.NewValidationError("screenshot must be an image, got %s", attachment.ContentType)
		}
		url, storagePath, err := s.uploadScreenshot(ctx, changeID, *attachment)
		if err != nil {
			return domain.SessionChangeFeedback{}, fmt.Errorf("upload screenshot %q: %w", attachment.FileName, err)
		}
		feedback.ScreenshotURL = &url
		feedback.ScreenshotPath = &storagePath
	}

	return s.repo.CreateFeedback(ctx, feedback)
}

// ListFeedback returns all feedback for a change, most recent first. An
// unknown change id yields an empty list rather than a not-found error.
func (s *Service) ListFeedback(ctx context.Context, changeID uuid.UUID) ([]domain.SessionChangeFeedback, error) {
	return s.repo.ListFeedback(ctx, changeID)
}

// DeleteFeedback removes a single feedback row, attempting blob cleanup of
// its screenshots first. Blob failures are logged and skipped so the row
// deletion always proceeds.
func (s *Service) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	feedback, err := s.repo.GetFeedback(ctx, id)
	if err != nil {
		return err
	}
	s.deleteBlobs(ctx, feedback.Attachments())
	return s.repo.DeleteFeedback(ctx, id)
}

// deleteBlobs is phase one of a destructive operation. Failures are logged
// and never propagate; the row deletion that follows is the authoritative
// step.
func (s *Service) deleteBlobs(ctx context.Context, attachments []domain.Attachment) {
	for _, attachment := range attachments {
		if err := s.blobs.Delete(ctx, attachment.URL); err != nil {
			log.Printf("[CHANGES] blob delete failed for %s: %v", attachment.Path, err)
		}
	}
}

func (s *Service) uploadScreenshot(ctx context.Context, changeID uuid.UUID, upload AttachmentUpload) (url string, storagePath string, err error) {
	name := path.Base(strings.ReplaceAll(upload.FileName, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		name = "screenshot"
	}
	storagePath = fmt.Sprintf("session-changes/%s/%d-%s", changeID, time.Now().UnixMilli(), name)
	url, err = s.blobs.Put(ctx, storagePath, upload.Data, upload.ContentType)
	if err != nil {
		return "", "", err
	}
	return url, storagePath, nil
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
