package repository

import (
	"context"
	"time"

	"github.com/beatworks/workshop-dashboard/internal/domain"

	"github.com/google/uuid"
)

// ChangeRepository persists session changes and their feedback rows. Feedback
// is subordinate to a change; the repository performs the cascading row
// deletion for a permanent delete inside one transaction, but the blob
// cleanup that precedes it belongs to the lifecycle service.
type ChangeRepository interface {
	Create(ctx context.Context, change domain.SessionChange) (domain.SessionChange, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.SessionChange, error)
	// ListActive returns rows with a null deletion timestamp, oldest first.
	ListActive(ctx context.Context) ([]domain.SessionChange, error)
	// ListDeleted returns soft-deleted rows, oldest first.
	ListDeleted(ctx context.Context) ([]domain.SessionChange, error)
	// ListByStatus returns rows matching status regardless of soft deletion,
	// oldest first. Callers re-check DeletedAt themselves.
	ListByStatus(ctx context.Context, status domain.ChangeStatus) ([]domain.SessionChange, error)
	Update(ctx context.Context, change domain.SessionChange) (domain.SessionChange, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
	Restore(ctx context.Context, id uuid.UUID) (domain.SessionChange, error)
	// DeletePermanently removes the change row and all its feedback rows in a
	// single transaction.
	DeletePermanently(ctx context.Context, id uuid.UUID) error

	CreateFeedback(ctx context.Context, feedback domain.SessionChangeFeedback) (domain.SessionChangeFeedback, error)
	GetFeedback(ctx context.Context, id uuid.UUID) (domain.SessionChangeFeedback, error)
	// ListFeedback returns all feedback for a change, newest first. An unknown
	// change id yields an empty slice, not an error.
	ListFeedback(ctx context.Context, changeID uuid.UUID) ([]domain.SessionChangeFeedback, error)
	DeleteFeedback(ctx context.Context, id uuid.UUID) error
}

// WorkshopRepository persists booking inquiries.
type WorkshopRepository interface {
	Create(ctx context.Context, req domain.WorkshopRequest) (domain.WorkshopRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.WorkshopRequest, error)
	List(ctx context.Context, status *domain.WorkshopStatus) ([]domain.WorkshopRequest, error)
	Update(ctx context.Context, req domain.WorkshopRequest) (domain.WorkshopRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogRepository persists pricing tiers and workshop locations.
type CatalogRepository interface {
	CreateTier(ctx context.Context, tier domain.PricingTier) (domain.PricingTier, error)
	GetTier(ctx context.Context, id uuid.UUID) (domain.PricingTier, error)
	ListTiers(ctx context.Context) ([]domain.PricingTier, error)
	UpdateTier(ctx context.Context, tier domain.PricingTier) (domain.PricingTier, error)
	DeleteTier(ctx context.Context, id uuid.UUID) error

	CreateLocation(ctx context.Context, loc domain.Location) (domain.Location, error)
	GetLocation(ctx context.Context, id uuid.UUID) (domain.Location, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	UpdateLocation(ctx context.Context, loc domain.Location) (domain.Location, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error
}

// SiteRepository persists page content and the about-page collections.
type SiteRepository interface {
	UpsertContent(ctx context.Context, content domain.PageContent) (domain.PageContent, error)
	ListContent(ctx context.Context, page string) ([]domain.PageContent, error)
	DeleteContent(ctx context.Context, page, sectionKey string) error

	CreateTeamMember(ctx context.Context, member domain.TeamMember) (domain.TeamMember, error)
	ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error)
	UpdateTeamMember(ctx context.Context, member domain.TeamMember) (domain.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id uuid.UUID) error

	CreateTestimonial(ctx context.Context, t domain.Testimonial) (domain.Testimonial, error)
	ListTestimonials(ctx context.Context) ([]domain.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id uuid.UUID) error

	CreateFAQEntry(ctx context.Context, entry domain.FAQEntry) (domain.FAQEntry, error)
	ListFAQEntries(ctx context.Context) ([]domain.FAQEntry, error)
	UpdateFAQEntry(ctx context.Context, entry domain.FAQEntry) (domain.FAQEntry, error)
	DeleteFAQEntry(ctx context.Context, id uuid.UUID) error
}

// BandRepository persists the band micro-site show listings and feed posts.
type BandRepository interface {
	CreateShow(ctx context.Context, show domain.Show) (domain.Show, error)
	GetShow(ctx context.Context, id uuid.UUID) (domain.Show, error)
	ListShows(ctx context.Context) ([]domain.Show, error)
	UpdateShow(ctx context.Context, show domain.Show) (domain.Show, error)
	DeleteShow(ctx context.Context, id uuid.UUID) error

	CreatePost(ctx context.Context, post domain.BandPost) (domain.BandPost, error)
	GetPost(ctx context.Context, id uuid.UUID) (domain.BandPost, error)
	ListPosts(ctx context.Context, publishedOnly bool) ([]domain.BandPost, error)
	UpdatePost(ctx context.Context, post domain.BandPost) (domain.BandPost, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
}

// MediaRepository persists gallery items.
type MediaRepository interface {
	Create(ctx context.Context, item domain.MediaItem) (domain.MediaItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.MediaItem, error)
	List(ctx context.Context) ([]domain.MediaItem, error)
	UpdateCaption(ctx context.Context, id uuid.UUID, caption *string, sortOrder int) (domain.MediaItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatsRepository exposes the count queries behind the dashboard landing page.
type StatsRepository interface {
	CountWorkshopsByStatus(ctx context.Context, status domain.WorkshopStatus) (int64, error)
	CountActiveChangesByStatus(ctx context.Context, status domain.ChangeStatus) (int64, error)
	CountMediaItems(ctx context.Context) (int64, error)
	CountUpcomingShows(ctx context.Context) (int64, error)
	CountTestimonials(ctx context.Context) (int64, error)
}
