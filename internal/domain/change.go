package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeStatus captures the review state of a session change.
type ChangeStatus string

const (
	ChangeStatusPending      ChangeStatus = "pending"
	ChangeStatusApproved     ChangeStatus = "approved"
	ChangeStatusNeedsChanges ChangeStatus = "needs_changes"
	ChangeStatusInProgress   ChangeStatus = "in_progress"
	ChangeStatusFixedReview  ChangeStatus = "fixed_review"
)

// Valid reports whether s is one of the known review states. Any state may
// move to any other state; there is no enforced transition graph.
func (s ChangeStatus) Valid() bool {
	switch s {
	case ChangeStatusPending, ChangeStatusApproved, ChangeStatusNeedsChanges,
		ChangeStatusInProgress, ChangeStatusFixedReview:
		return true
	}
	return false
}

// DefaultAddedBy is recorded when a submitter does not identify themselves.
const DefaultAddedBy = "client"

// SessionChange is a unit of reviewable work submitted for approval.
// ScreenshotURLs and ScreenshotPaths are index-aligned: the URL resolves the
// stored object, the path is the only handle usable to delete it again.
type SessionChange struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	Description     *string      `json:"description,omitempty"`
	Category        *string      `json:"category,omitempty"`
	ViewURL         *string      `json:"viewUrl,omitempty"`
	FilesChanged    []string     `json:"filesChanged,omitempty"`
	ChangeDetails   []string     `json:"changeDetails,omitempty"`
	ScreenshotURLs  []string     `json:"screenshotUrls,omitempty"`
	ScreenshotPaths []string     `json:"screenshotPaths,omitempty"`
	Status          ChangeStatus `json:"status"`
	AddedBy         string       `json:"addedBy"`
	DeletedAt       *time.Time   `json:"deletedAt,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Deleted reports whether the change is soft-deleted.
func (c SessionChange) Deleted() bool {
	return c.DeletedAt != nil
}

// Attachment pairs an externally resolvable URL with the storage key that
// addresses the same object for deletion.
type Attachment struct {
	URL  string
	Path string
}

// Attachments zips the screenshot URL and path sequences. Pairs missing either
// half are dropped: without the path there is no handle to delete the object,
// and without the URL the row never referenced it.
func (c SessionChange) Attachments() []Attachment {
	return zipAttachments(c.ScreenshotURLs, c.ScreenshotPaths)
}

func zipAttachments(urls, paths []string) []Attachment {
	n := len(urls)
	if len(paths) < n {
		n = len(paths)
	}
	if n == 0 {
		return nil
	}
	out := make([]Attachment, 0, n)
	for i := 0; i < n; i++ {
		if urls[i] == "" || paths[i] == "" {
			continue
		}
		out = append(out, Attachment{URL: urls[i], Path: paths[i]})
	}
	return out
}
