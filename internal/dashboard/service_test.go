package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/beatworks/workshop-dashboard/internal/domain"
	"github.com/beatworks/workshop-dashboard/internal/repository"
)

type stubStatsRepo struct {
	workshops    int64
	workshopsErr error
	changes      int64
	changesErr   error
	media        int64
	shows        int64
	testimonials int64
}

func (s *stubStatsRepo) CountWorkshopsByStatus(_ context.Context, _ domain.WorkshopStatus) (int64, error) {
	return s.workshops, s.workshopsErr
}

func (s *stubStatsRepo) CountActiveChangesByStatus(_ context.Context, _ domain.ChangeStatus) (int64, error) {
	return s.changes, s.changesErr
}

func (s *stubStatsRepo) CountMediaItems(_ context.Context) (int64, error) {
	return s.media, nil
}

func (s *stubStatsRepo) CountUpcomingShows(_ context.Context) (int64, error) {
	return s.shows, nil
}

func (s *stubStatsRepo) CountTestimonials(_ context.Context) (int64, error) {
	return s.testimonials, nil
}

var _ repository.StatsRepository = (*stubStatsRepo)(nil)

func TestStatsLoadsAllMetrics(t *testing.T) {
	service := NewService(&stubStatsRepo{
		workshops:    3,
		changes:      2,
		media:        14,
		shows:        1,
		testimonials: 6,
	})

	stats := service.Stats(context.Background())
	expected := domain.DashboardStats{
		NewWorkshopRequests: 3,
		PendingChanges:      2,
		MediaItems:          14,
		UpcomingShows:       1,
		Testimonials:        6,
	}
	if stats != expected {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestStatsMasksFailingMetricToZero(t *testing.T) {
	service := NewService(&stubStatsRepo{
		workshops:  5,
		changesErr: errors.New("query timeout"),
		media:      7,
	})

	stats := service.Stats(context.Background())
	if stats.PendingChanges != 0 {
		t.Fatalf("failing metric must read zero, got %d", stats.PendingChanges)
	}
	if stats.NewWorkshopRequests != 5 || stats.MediaItems != 7 {
		t.Fatalf("healthy metrics must still load, got %+v", stats)
	}
}
