package seed

import (
	"fmt"
	"log"
	"math/rand"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumAuthors  int
	NumPosts    int
	ShouldClean bool
}

// DefaultOptions is the preset used by `inkwell seed` and the dev
// bootstrap: a small but fully connected blog.
var DefaultOptions = Options{
	NumAuthors: 3,
	NumPosts:   40,
}

var categoryNames = map[string]string{
	"Engineering": "Notes from building and running software",
	"Databases":   "Storage, queries, and the things that go wrong",
	"Essays":      "Longer-form thinking, loosely technical",
	"Tooling":     "Editors, terminals, and workflow tweaks",
}

var tagNames = []string{
	"go", "postgres", "redis", "testing", "performance",
	"observability", "api-design", "deployment", "writing", "side-projects",
}

// Run seeds the database with the default preset.
func Run(db *gorm.DB) error {
	return Seed(db, DefaultOptions)
}

// Seed populates the database with demo content: authors, taxonomy,
// posts with comments and likes, singleton pages, and a few inbox
// messages.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumAuthors <= 0 {
		opts.NumAuthors = DefaultOptions.NumAuthors
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = DefaultOptions.NumPosts
	}
	log.Printf("Seeding %d authors and %d posts...", opts.NumAuthors, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db)

	authors := make([]*models.User, 0, opts.NumAuthors)
	for i := 0; i < opts.NumAuthors; i++ {
		author, err := f.CreateAuthor()
		if err != nil {
			return fmt.Errorf("failed to create author: %w", err)
		}
		authors = append(authors, author)
	}
	log.Printf("created %d authors", len(authors))

	categories := make([]*models.Category, 0, len(categoryNames))
	for name, description := range categoryNames {
		category, err := f.CreateCategory(name, description)
		if err != nil {
			return fmt.Errorf("failed to create category %q: %w", name, err)
		}
		categories = append(categories, category)
	}

	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag, err := f.CreateTag(name)
		if err != nil {
			return fmt.Errorf("failed to create tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}
	log.Printf("created %d categories and %d tags", len(categories), len(tags))

	r := f.rand
	for i := 0; i < opts.NumPosts; i++ {
		author := authors[r.Intn(len(authors))]
		var category *models.Category
		if r.Intn(10) != 0 {
			category = categories[r.Intn(len(categories))]
		}
		published := r.Intn(5) != 0

		post, err := f.CreatePost(author, category, tags, published)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		if !published {
			continue
		}

		for j := 0; j < r.Intn(6); j++ {
			if _, err := f.CreateComment(post); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
		}
		for j := 0; j < r.Intn(12); j++ {
			if _, err := f.CreateLike(post); err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
		}
	}
	log.Printf("created %d posts with comments and likes", opts.NumPosts)

	if err := ensurePages(db, authors[0]); err != nil {
		return fmt.Errorf("failed to seed pages: %w", err)
	}

	for i := 0; i < 3+rand.Intn(3); i++ {
		if _, err := f.CreateContactMessage(); err != nil {
			return fmt.Errorf("failed to create contact message: %w", err)
		}
	}

	log.Println("Seeding complete")
	return nil
}

// ensurePages fills the singleton About and Contact pages when they are
// still empty so the public site has something to show.
func ensurePages(db *gorm.DB, owner *models.User) error {
	about := models.AboutPage{
		Key:      models.AboutPageKey,
		Title:    "About Me",
		Subtitle: "Notes on software, mostly",
		Name:     owner.DisplayName,
		Bio:      "I build backend systems for a living and write about what breaks.",
		Topics:   "Go\nPostgres\nDistributed systems",
		Email:    owner.Email,
	}
	if err := db.Where(models.AboutPage{Key: models.AboutPageKey}).
		Attrs(about).FirstOrCreate(&models.AboutPage{}).Error; err != nil {
		return err
	}

	contact := models.ContactPage{
		Key:        models.ContactPageKey,
		Title:      "Get in Touch",
		Subtitle:   "Questions, corrections, or just to say hello",
		EmailLabel: "Email",
		EmailValue: owner.Email,
	}
	return db.Where(models.ContactPage{Key: models.ContactPageKey}).
		Attrs(contact).FirstOrCreate(&models.ContactPage{}).Error
}

// clearData removes seeded content. Order matters for foreign keys.
func clearData(db *gorm.DB) error {
	tables := []string{
		"post_tags", "likes", "saved_posts", "comments",
		"posts", "tags", "categories", "contact_messages",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
