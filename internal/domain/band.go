package domain

import (
	"time"

	"github.com/google/uuid"
)

// Show is a live listing on the band micro-site.
type Show struct {
	ID        uuid.UUID `json:"id"`
	Venue     string    `json:"venue"`
	City      *string   `json:"city,omitempty"`
	ShowDate  time.Time `json:"showDate"`
	TicketURL *string   `json:"ticketUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BandPost is an entry in the band micro-site content feed.
type BandPost struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Body        *string    `json:"body,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
