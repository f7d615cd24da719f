// Package dashboard aggregates the headline counts on the operations landing
// page. Each metric loads independently; a failing count is logged and shown
// as zero so one bad query never blanks the whole page.
package dashboard

import (
	"context"
	"log"
	"net/http"

	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/httpx"
	"github.com/beatworks/workshop-dashboard/internal/repository"
)

// Service computes dashboard stats.
type Service struct {
	stats repository.StatsRepository
}

// NewService wires the stats aggregator.
func NewService(stats repository.StatsRepository) *Service {
	return &Service{stats: stats}
}

// Stats loads every headline metric, masking individual failures to zero.
func (s *Service) Stats(ctx context.Context) domain.DashboardStats {
	return domain.DashboardStats{
		NewWorkshopRequests: s.count("new workshop requests", func() (int64, error) {
			return s.stats.CountWorkshopsByStatus(ctx, domain.WorkshopStatusNew)
		}),
		PendingChanges: s.count("pending changes", func() (int64, error) {
			return s.stats.CountActiveChangesByStatus(ctx, domain.ChangeStatusPending)
		}),
		MediaItems: s.count("media items", func() (int64, error) {
			return s.stats.CountMediaItems(ctx)
		}),
		UpcomingShows: s.count("upcoming shows", func() (int64, error) {
			return s.stats.CountUpcomingShows(ctx)
		}),
		Testimonials: s.count("testimonials", func() (int64, error) {
			return s.stats.CountTestimonials(ctx)
		}),
	}
}

func (s *Service) count(name string, load func() (int64, error)) int64 {
	value, err := load()
	if err != nil {
		log.Printf("[DASHBOARD] counting %s: %v", name, err)
		return 0
	}
	return value
}

// NewHTTPHandler serves the stats at GET /dashboard/stats.
func NewHTTPHandler(service *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, service.Stats(r.Context()))
	})
}
