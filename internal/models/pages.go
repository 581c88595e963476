package models

import "time"

// Singleton page records are resolved by a fixed well-known key instead of
// pinning the primary key; the repository does a lookup-or-create on Key.
const (
	AboutPageKey   = "about"
	ContactPageKey = "contact"
)

// AboutPage holds the editable content of the About page. At most one row
// exists, identified by AboutPageKey.
type AboutPage struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Key          string    `gorm:"uniqueIndex;not null" json:"-"`
	Title        string    `gorm:"default:'About Me'" json:"title"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Name         string    `json:"name,omitempty"`
	Bio          string    `gorm:"type:text" json:"bio,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	// Topics is newline-separated; the service splits it for responses.
	Topics      string    `gorm:"type:text" json:"-"`
	GitHubURL   string    `json:"github_url,omitempty"`
	LinkedInURL string    `json:"linkedin_url,omitempty"`
	TwitterURL  string    `json:"twitter_url,omitempty"`
	Email       string    `json:"email,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ContactPage holds the editable content of the Contact page. At most one
// row exists, identified by ContactPageKey.
type ContactPage struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Key           string    `gorm:"uniqueIndex;not null" json:"-"`
	Title         string    `gorm:"default:'Get in Touch'" json:"title"`
	Subtitle      string    `json:"subtitle,omitempty"`
	EmailLabel    string    `gorm:"default:'Email'" json:"email_label"`
	EmailValue    string    `json:"email_value,omitempty"`
	GitHubLabel   string    `gorm:"default:'GitHub'" json:"github_label"`
	GitHubURL     string    `json:"github_url,omitempty"`
	GitHubValue   string    `json:"github_value,omitempty"`
	LinkedInLabel string    `gorm:"default:'LinkedIn'" json:"linkedin_label"`
	LinkedInURL   string    `json:"linkedin_url,omitempty"`
	LinkedInValue string    `json:"linkedin_value,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}
