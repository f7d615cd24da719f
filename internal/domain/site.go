package domain

import (
	"time"

	"github.com/google/uuid"
)

// PageContent is a single editable text value on a public page, addressed by
// (page, section key). Writes are upserts.
type PageContent struct {
	ID         uuid.UUID `json:"id"`
	Page       string    `json:"page"`
	SectionKey string    `json:"sectionKey"`
	Value      string    `json:"value"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TeamMember is a person shown on the about page.
type TeamMember struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      *string   `json:"role,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	PhotoURL  *string   `json:"photoUrl,omitempty"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// Testimonial is a customer quote shown on the public site.
type Testimonial struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	Context   *string   `json:"context,omitempty"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// FAQEntry is a question/answer pair on the FAQ page.
type FAQEntry struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}
