package repository

import (
	"context"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// GlobalStats is the public snapshot: published posts only, approved
// comments only.
type GlobalStats struct {
	TotalPosts    int64 `json:"total_posts"`
	TotalViews    int64 `json:"total_views"`
	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
}

// DashboardStats is the staff snapshot: drafts included, all comments
// counted regardless of approval.
type DashboardStats struct {
	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`
	DraftPosts     int64 `json:"draft_posts"`
	FeaturedPosts  int64 `json:"featured_posts"`
	TotalViews     int64 `json:"total_views"`
	TotalLikes     int64 `json:"total_likes"`
	TotalComments  int64 `json:"total_comments"`
}

// MonthBucket is one calendar month of the posting histogram.
type MonthBucket struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// StatsRepository aggregates engagement numbers for the public stats
// endpoint and the staff dashboard.
type StatsRepository interface {
	GlobalStats(ctx context.Context) (*GlobalStats, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	// MonthlyPostCounts returns exactly `months` calendar-month buckets,
	// current month last, zero months present.
	MonthlyPostCounts(ctx context.Context, months int) ([]MonthBucket, error)
}

type statsRepository struct {
	db *gorm.DB
	// now anchors the histogram's current month. Tests pin it.
	now func() time.Time
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db, now: time.Now}
}

func (r *statsRepository) GlobalStats(ctx context.Context) (*GlobalStats, error) {
	var stats GlobalStats
	err := cache.Aside(ctx, cache.GlobalStatsKey, &stats, cache.StatsTTL, func() error {
		db := readDB(r.db).WithContext(ctx)

		if err := db.Model(&models.Post{}).Where("is_published = ?", true).Count(&stats.TotalPosts).Error; err != nil {
			return err
		}

		var views *int64
		if err := db.Model(&models.Post{}).Where("is_published = ?", true).
			Select("SUM(view_count)").Scan(&views).Error; err != nil {
			return err
		}
		if views != nil {
			stats.TotalViews = *views
		}

		if err := db.Model(&models.Like{}).Count(&stats.TotalLikes).Error; err != nil {
			return err
		}

		return db.Model(&models.Comment{}).Where("is_approved = ?", true).Count(&stats.TotalComments).Error
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := readDB(r.db).WithContext(ctx)
	var stats DashboardStats

	if err := db.Model(&models.Post{}).Count(&stats.TotalPosts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Post{}).Where("is_published = ?", true).Count(&stats.PublishedPosts).Error; err != nil {
		return nil, err
	}
	stats.DraftPosts = stats.TotalPosts - stats.PublishedPosts
	if err := db.Model(&models.Post{}).Where("is_featured = ?", true).Count(&stats.FeaturedPosts).Error; err != nil {
		return nil, err
	}

	var views *int64
	if err := db.Model(&models.Post{}).Select("SUM(view_count)").Scan(&views).Error; err != nil {
		return nil, err
	}
	if views != nil {
		stats.TotalViews = *views
	}

	if err := db.Model(&models.Like{}).Count(&stats.TotalLikes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Comment{}).Count(&stats.TotalComments).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// MonthlyPostCounts buckets in Go rather than SQL so the month arithmetic
// behaves identically on postgres and the sqlite test driver.
func (r *statsRepository) MonthlyPostCounts(ctx context.Context, months int) ([]MonthBucket, error) {
	if months <= 0 {
		months = 6
	}

	now := r.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start := first.AddDate(0, -(months - 1), 0)

	type row struct {
		CreatedAt time.Time
	}
	var rows []row
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Post{}).
		Select("created_at").
		Where("created_at >= ?", start).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make([]MonthBucket, months)
	index := map[string]int{}
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		buckets[i] = MonthBucket{
			Year:  m.Year(),
			Month: int(m.Month()),
			Label: m.Format("Jan 2006"),
		}
		index[m.Format("2006-01")] = i
	}

	for _, entry := range rows {
		key := entry.CreatedAt.In(now.Location()).Format("2006-01")
		if i, ok := index[key]; ok {
			buckets[i].Count++
		}
	}

	return buckets, nil
}
