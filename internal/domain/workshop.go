package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkshopStatus tracks where a booking inquiry sits in the sales funnel.
type WorkshopStatus string

const (
	WorkshopStatusNew       WorkshopStatus = "new"
	WorkshopStatusContacted WorkshopStatus = "contacted"
	WorkshopStatusQuoted    WorkshopStatus = "quoted"
	WorkshopStatusBooked    WorkshopStatus = "booked"
	WorkshopStatusDeclined  WorkshopStatus = "declined"
)

// Valid reports whether s is a known funnel state.
func (s WorkshopStatus) Valid() bool {
	switch s {
	case WorkshopStatusNew, WorkshopStatusContacted, WorkshopStatusQuoted,
		WorkshopStatusBooked, WorkshopStatusDeclined:
		return true
	}
	return false
}

// WorkshopRequest is a booking inquiry submitted through the public site.
type WorkshopRequest struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     *string        `json:"phone,omitempty"`
	EventDate *time.Time     `json:"eventDate,omitempty"`
	Location  *string        `json:"location,omitempty"`
	GroupSize *int           `json:"groupSize,omitempty"`
	Message   *string        `json:"message,omitempty"`
	Status    WorkshopStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
