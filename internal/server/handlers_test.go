package server

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer builds a Server over an in-memory database. Redis is
// nil; the cache layer degrades to direct reads.
func setupTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		JWTSecret: "test-secret-for-handlers",
		Port:      "0",
		Env:       "test",
	}
	return NewServerWithDeps(cfg, db, nil), db
}

func createUser(t *testing.T, db *gorm.DB, username string, staff bool) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		IsStaff:  staff,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createPost(t *testing.T, s *Server, author *models.User, title string, published bool) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Content:     "content for " + title,
		AuthorID:    author.ID,
		IsPublished: published,
	}
	if published {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := s.postRepo.Create(context.Background(), post); err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	return post
}

// tokenFor mints a real JWT for the user so tests exercise AuthRequired
// end to end.
func tokenFor(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}
