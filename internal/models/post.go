// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a blog post in the Inkwell application.
//
// Slug is assigned once from the title at creation time and is globally
// unique; collisions get a numeric suffix (my-title, my-title-1, ...).
// PublishedAt is set the first time IsPublished flips true and is never
// cleared afterwards, even if the post is unpublished again.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Slug          string    `gorm:"uniqueIndex;not null" json:"slug"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	AuthorID      uint      `gorm:"not null;index" json:"author_id"`
	Author        User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	CategoryID    *uint     `gorm:"index" json:"category_id,omitempty"`
	Category      *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Tags          []Tag     `gorm:"many2many:post_tags" json:"tags"`
	IsPublished   bool      `gorm:"default:false;index" json:"is_published"`
	IsFeatured    bool      `gorm:"default:false" json:"is_featured"`
	// ViewCount only ever increases; increments happen as a single SQL
	// expression so concurrent views never lose updates.
	ViewCount   uint       `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->" json:"like_count"`
	// CommentCount is not persisted; approved comments only, computed at query time
	CommentCount int `gorm:"->" json:"comment_count"`
	// Liked indicates whether the requesting session liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Saved indicates whether the requesting user bookmarked this post (computed)
	Saved bool `gorm:"->" json:"saved"`
}
