package models

import "time"

// Like records anonymous engagement with a post, keyed by an opaque
// session token. The (post, session) pair is unique; existence of the row
// is the whole signal, so likes are created and hard-deleted but never
// updated.
type Like struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"not null;uniqueIndex:idx_post_session" json:"post_id"`
	Post         Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	SessionToken string    `gorm:"size:64;not null;uniqueIndex:idx_post_session" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SavedPost is an authenticated bookmark. The (user, post) pair is unique
// and rows follow the same create/delete-only lifecycle as likes.
type SavedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post"`
	CreatedAt time.Time `json:"created_at"`
}
