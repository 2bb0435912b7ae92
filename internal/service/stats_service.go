package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Shivam-knight-owl/product-tour-platform/internal/model"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/repository"
)

type StatsService interface {
	GetDashboardStats(ctx context.Context, userID uuid.UUID) (*model.DashboardStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

// GetDashboardStats runs the six aggregate queries concurrently; they are
// independent reads and join before the response is assembled.
func (s *statsService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*model.DashboardStats, error) {
	var stats model.DashboardStats

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.statsRepo.CountTours(ctx, userID)
		stats.TotalTours = count
		return err
	})

	g.Go(func() error {
		count, err := s.statsRepo.CountToursByVisibility(ctx, userID, true)
		stats.PublicTours = count
		return err
	})

	g.Go(func() error {
		count, err := s.statsRepo.CountToursByVisibility(ctx, userID, false)
		stats.PrivateTours = count
		return err
	})

	g.Go(func() error {
		total, err := s.statsRepo.SumViews(ctx, userID)
		stats.TotalViews = total
		return err
	})

	g.Go(func() error {
		tour, err := s.statsRepo.MostViewedTour(ctx, userID)
		stats.MostViewedTour = tour
		return err
	})

	g.Go(func() error {
		tour, err := s.statsRepo.LatestTour(ctx, userID)
		stats.LatestTour = tour
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}
