package database

import (
	"testing"

	modelspkg "inkwell/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesSavedPost(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.SavedPost); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include SavedPost")
}

func TestRegisteredMigrationsAreOrdered(t *testing.T) {
	ms := GetMigrations()
	require.NotEmpty(t, ms)
	for i := 1; i < len(ms); i++ {
		require.Greater(t, ms[i].Version, ms[i-1].Version)
	}
}
