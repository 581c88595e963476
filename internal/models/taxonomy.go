package models

import "time"

// Category groups posts into a single broad topic. A post belongs to at
// most one category; deleting a category detaches its posts rather than
// cascading to them.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// PostCount is not persisted; published posts only, computed at query time
	PostCount int `gorm:"->" json:"post_count"`
}

// Tag is a free-form label attached to posts through a many-to-many join.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`

	// PostCount is not persisted; published posts only, computed at query time
	PostCount int `gorm:"->" json:"post_count"`
}
