package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const (
	histogramMonths    = 6
	dashboardListLimit = 5
)

// StatsService aggregates public and dashboard statistics.
type StatsService struct {
	statsRepo repository.StatsRepository
	postRepo  repository.PostRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(statsRepo repository.StatsRepository, postRepo repository.PostRepository) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		postRepo:  postRepo,
	}
}

// Global returns the public site-wide counters.
func (s *StatsService) Global(ctx context.Context) (*repository.GlobalStats, error) {
	return s.statsRepo.GlobalStats(ctx)
}

// DashboardOverview bundles everything the staff dashboard renders in
// one response.
type DashboardOverview struct {
	Stats        *repository.DashboardStats `json:"stats"`
	Monthly      []repository.MonthBucket   `json:"monthly_posts"`
	RecentPosts  []*models.Post             `json:"recent_posts"`
	PopularPosts []*models.Post             `json:"popular_posts"`
}

// Dashboard returns the staff overview: counters, a six month posting
// histogram, and the newest and most viewed posts.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardOverview, error) {
	stats, err := s.statsRepo.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	monthly, err := s.statsRepo.MonthlyPostCounts(ctx, histogramMonths)
	if err != nil {
		return nil, err
	}

	recent, err := s.postRepo.ListAdmin(ctx, repository.AdminFilter{Page: 1, PageSize: dashboardListLimit})
	if err != nil {
		return nil, err
	}

	popular, err := s.postRepo.Popular(ctx, dashboardListLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		Stats:        stats,
		Monthly:      monthly,
		RecentPosts:  recent,
		PopularPosts: popular,
	}, nil
}
