package domain

import (
	"time"

	"github.com/google/uuid"
)

// MediaItem is a gallery image. URL resolves the stored object; Path is the
// storage key used to delete it when the item is removed.
type MediaItem struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Path      string    `json:"path"`
	Caption   *string   `json:"caption,omitempty"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardStats aggregates headline counts for the operations dashboard.
// Metrics that fail to load are reported as zero rather than failing the page.
type DashboardStats struct {
	NewWorkshopRequests int64 `json:"newWorkshopRequests"`
	PendingChanges      int64 `json:"pendingChanges"`
	MediaItems          int64 `json:"mediaItems"`
	UpcomingShows       int64 `json:"upcomingShows"`
	Testimonials        int64 `json:"testimonials"`
}
