package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, staff bool) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		IsStaff:  staff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, author *models.User, title string, published bool, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Content:     "content for " + title,
		AuthorID:    author.ID,
		IsPublished: published,
		CreatedAt:   createdAt,
	}
	repo := NewPostRepository(db)
	require.NoError(t, repo.Create(context.Background(), post))
	if !createdAt.IsZero() {
		require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("created_at", createdAt).Error)
		post.CreatedAt = createdAt
	}
	return post
}
