// Command seed populates the database with demo blog content.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numAuthors := flag.Int("authors", seed.DefaultOptions.NumAuthors, "Number of staff authors to create")
	numPosts := flag.Int("posts", seed.DefaultOptions.NumPosts, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean existing content before seeding")
	flag.Parse()

	log.Printf("Seeding: %d authors, %d posts, clean=%v", *numAuthors, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumAuthors:  *numAuthors,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Demo authors log in with the password: password123")
}
