// Package seed provides helpers to create demo data for development and
// testing. Nothing in here runs in production.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them. It is a thin helper
// used by the seed preset and by tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateAuthor persists a staff account that can write posts. The
// password is always "password123" so demo logins are predictable.
func (f *Factory) CreateAuthor(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	user := &models.User{
		Username:    strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:       gofakeit.Email(),
		Password:    string(hashed),
		DisplayName: gofakeit.Name(),
		IsStaff:     true,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory persists a category, deriving the slug from the name.
func (f *Factory) CreateCategory(name, description string) (*models.Category, error) {
	category := &models.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
	}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateTag persists a tag, deriving the slug from the name.
func (f *Factory) CreateTag(name string) (*models.Tag, error) {
	tag := &models.Tag{Name: name, Slug: slug.Make(name)}
	if err := f.db.Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// CreatePost persists a post with generated prose and a creation time
// spread over the last six months so the dashboard histogram has shape.
func (f *Factory) CreatePost(author *models.User, category *models.Category, tags []models.Tag, published bool, overrides ...func(*models.Post)) (*models.Post, error) {
	title := strings.TrimSuffix(gofakeit.Sentence(f.rand.Intn(5)+3), ".")
	createdAt := time.Now().
		AddDate(0, 0, -f.rand.Intn(180)).
		Add(-time.Duration(f.rand.Intn(24)) * time.Hour)

	post := &models.Post{
		Title:         title,
		Slug:          slug.Make(title) + "-" + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Content:       gofakeit.Paragraph(3, 5, 12, "\n\n"),
		CoverImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
		AuthorID:      author.ID,
		IsPublished:   published,
		IsFeatured:    f.rand.Intn(5) == 0,
		ViewCount:     uint(f.rand.Intn(500)),
		CreatedAt:     createdAt,
	}
	if category != nil {
		post.CategoryID = &category.ID
	}
	if published {
		publishedAt := createdAt.Add(time.Duration(f.rand.Intn(48)) * time.Hour)
		post.PublishedAt = &publishedAt
	}
	if len(tags) > 0 {
		post.Tags = pickTags(f.rand, tags)
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists an approved reader comment on the post.
func (f *Factory) CreateComment(post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:     post.ID,
		Name:       gofakeit.Name(),
		Email:      gofakeit.Email(),
		Body:       gofakeit.Sentence(f.rand.Intn(15) + 5),
		IsApproved: f.rand.Intn(10) != 0,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists an anonymous like keyed by a generated session token.
func (f *Factory) CreateLike(post *models.Post) (*models.Like, error) {
	like := &models.Like{
		PostID:       post.ID,
		SessionToken: gofakeit.UUID(),
	}
	if err := f.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

// CreateContactMessage persists an unread contact form submission.
func (f *Factory) CreateContactMessage() (*models.ContactMessage, error) {
	message := &models.ContactMessage{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Subject: strings.TrimSuffix(gofakeit.Sentence(4), "."),
		Message: gofakeit.Paragraph(1, 3, 10, "\n"),
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func pickTags(r *rand.Rand, tags []models.Tag) []models.Tag {
	n := r.Intn(3) + 1
	if n > len(tags) {
		n = len(tags)
	}
	picked := make([]models.Tag, 0, n)
	for _, i := range r.Perm(len(tags))[:n] {
		picked = append(picked, tags[i])
	}
	return picked
}
