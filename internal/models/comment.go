package models

import "time"

// Comment is an unauthenticated reader comment on a post. Comments are
// approved by default; staff can hide one by clearing IsApproved, and
// only staff see unapproved comments in listings.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	Post       Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"not null" json:"email"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	IsApproved bool      `gorm:"default:true" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}
