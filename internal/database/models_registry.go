package database

import "inkwell/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.SavedPost{},
		&models.AboutPage{},
		&models.ContactPage{},
		&models.ContactMessage{},
	}
}
