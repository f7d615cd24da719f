package domain

import (
	"testing"
)

func TestChangeStatusValid(t *testing.T) {
	for _, status := range []ChangeStatus{
		ChangeStatusPending, ChangeStatusApproved, ChangeStatusNeedsChanges,
		ChangeStatusInProgress, ChangeStatusFixedReview,
	} {
		if !status.Valid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if ChangeStatus("archived").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}

func TestSessionChangeAttachmentsDropsIncompletePairs(t *testing.T) {
	change := SessionChange{
		ScreenshotURLs:  []string{"https://cdn/a.png", "", "https://cdn/c.png", "https://cdn/d.png"},
		ScreenshotPaths: []string{"p/a.png", "p/b.png", ""},
	}

	attachments := change.Attachments()
	if len(attachments) != 1 {
		t.Fatalf("expected 1 complete pair, got %d", len(attachments))
	}
	if attachments[0].URL != "https://cdn/a.png" || attachments[0].Path != "p/a.png" {
		t.Fatalf("unexpected pair %+v", attachments[0])
	}
}

func TestFeedbackAttachmentsMergesShapes(t *testing.T) {
	url := "https://cdn/single.png"
	path := "p/single.png"
	feedback := SessionChangeFeedback{
		ScreenshotURL:   &url,
		ScreenshotPath:  &path,
		ScreenshotURLs:  []string{"https://cdn/legacy.png"},
		ScreenshotPaths: []string{"p/legacy.png"},
	}

	attachments := feedback.Attachments()
	if len(attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(attachments))
	}
	if attachments[0].Path != "p/single.png" {
		t.Fatalf("singular shape must come first, got %+v", attachments[0])
	}
	if attachments[1].Path != "p/legacy.png" {
		t.Fatalf("plural shape must follow, got %+v", attachments[1])
	}
}

func TestFeedbackAttachmentsEmptyShapes(t *testing.T) {
	if got := (SessionChangeFeedback{}).Attachments(); len(got) != 0 {
		t.Fatalf("expected no attachments, got %+v", got)
	}
}
