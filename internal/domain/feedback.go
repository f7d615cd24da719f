package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionChangeFeedback is a reviewer's response attached to exactly one
// session change. It has no independent lifecycle: it is deleted on its own or
// cascaded when the owning change is permanently deleted.
//
// Two persisted attachment shapes exist side by side: the current singular
// ScreenshotURL/ScreenshotPath pair and the older plural arrays. Both must be
// honored on read; Attachments normalizes them into one ordered list.
type SessionChangeFeedback struct {
	ID              uuid.UUID `json:"id"`
	ChangeID        uuid.UUID `json:"changeId"`
	FeedbackText    *string   `json:"feedbackText,omitempty"`
	ScreenshotURL   *string   `json:"screenshotUrl,omitempty"`
	ScreenshotPath  *string   `json:"screenshotPath,omitempty"`
	ScreenshotURLs  []string  `json:"screenshotUrls,omitempty"`
	ScreenshotPaths []string  `json:"screenshotPaths,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Attachments merges the singular and plural screenshot shapes into an ordered
// list of (url, path) pairs, singular form first.
func (f SessionChangeFeedback) Attachments() []Attachment {
	var out []Attachment
	if f.ScreenshotURL != nil && f.ScreenshotPath != nil && *f.ScreenshotURL != "" && *f.ScreenshotPath != "" {
		out = append(out, Attachment{URL: *f.ScreenshotURL, Path: *f.ScreenshotPath})
	}
	return append(out, zipAttachments(f.ScreenshotURLs, f.ScreenshotPaths)...)
}
