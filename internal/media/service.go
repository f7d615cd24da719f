// Package media manages the gallery: images live in external blob storage and
// the database row carries the resolved URL plus the storage path needed to
// delete the object later.
package media

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

// Service uploads gallery images and keeps rows and blobs in step.
type Service struct {
	repo  repository.MediaRepository
	blobs blobstore.Store
}

// NewService wires the gallery manager.
func NewService(repo repository.MediaRepository, blobs blobstore.Store) *Service {
	return &Service{repo: repo, blobs: blobs}
}

// Upload stores the image in blob storage and records the gallery row.
func (s *Service) Upload(ctx context.Context, fileName, contentType string, data []byte, caption *string, sortOrder int) (domain.MediaItem, error) {
	if len(data) == 0 {
		return domain.MediaItem{}, domain.NewValidationError("file is empty")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return domain.MediaItem{}, domain.NewValidationError("only image uploads are accepted, got %q", contentType)
	}

	id := uuid.New()
	name := path.Base(strings.TrimSpace(fileName))
	if name == "" || name == "." {
		name = "upload"
	}
	blobPath := fmt.Sprintf("media/%s/%d-%s", id, time.Now().UnixMilli(), name)

	url, err := s.blobs.Put(ctx, blobPath, data, contentType)
	if err != nil {
		return domain.MediaItem{}, fmt.Errorf("upload media blob: %w", err)
	}

	item, err := s.repo.Create(ctx, domain.MediaItem{
		ID:        id,
		URL:       url,
		Path:      blobPath,
		Caption:   caption,
		SortOrder: sortOrder,
	})
	if err != nil {
		// The row is authoritative; orphaned blobs are tolerated but logged.
		log.Printf("[MEDIA] orphaned blob %s after row insert failure: %v", blobPath, err)
		return domain.MediaItem{}, fmt.Errorf("create media item: %w", err)
	}
	return item, nil
}

// List returns all gallery items in display order.
func (s *Service) List(ctx context.Context) ([]domain.MediaItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list media items: %w", err)
	}
	return items, nil
}

// UpdateCaption sets the caption and sort order of a gallery item.
func (s *Service) UpdateCaption(ctx context.Context, id uuid.UUID, caption *string, sortOrder int) (domain.MediaItem, error) {
	item, err := s.repo.UpdateCaption(ctx, id, caption, sortOrder)
	if err != nil {
		return domain.MediaItem{}, fmt.Errorf("update media item %s: %w", id, err)
	}
	return item, nil
}

// Delete removes the gallery row. Blob deletion is attempted first and is
// best effort; a storage failure never blocks the row deletion.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get media item %s: %w", id, err)
	}

	if err := s.blobs.Delete(ctx, item.URL); err != nil {
		log.Printf("[MEDIA] failed to delete blob %s: %v", item.Path, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete media item %s: %w", id, err)
	}
	return nil
}
