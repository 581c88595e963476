package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyRepository_CategoryCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "author", true)

	golang := &models.Category{Name: "Go"}
	empty := &models.Category{Name: "Empty"}
	draftsOnly := &models.Category{Name: "Drafts Only"}
	require.NoError(t, repo.CreateCategory(ctx, golang))
	require.NoError(t, repo.CreateCategory(ctx, empty))
	require.NoError(t, repo.CreateCategory(ctx, draftsOnly))

	published := seedPost(t, db, author, "Go Post", true, time.Time{})
	draft := seedPost(t, db, author, "Draft Post", false, time.Time{})
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", published.ID).Update("category_id", golang.ID).Error)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", draft.ID).Update("category_id", draftsOnly.ID).Error)

	categories, err := repo.ListCategoriesWithCounts(ctx)
	require.NoError(t, err)

	// Zero-count categories never appear; drafts do not count.
	require.Len(t, categories, 1)
	assert.Equal(t, "Go", categories[0].Name)
	assert.Equal(t, "go", categories[0].Slug)
	assert.Equal(t, 1, categories[0].PostCount)
}

func TestTaxonomyRepository_SlugCollisionsGetSuffix(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()

	first := &models.Category{Name: "Go!"}
	second := &models.Category{Name: "Go?"}
	require.NoError(t, repo.CreateCategory(ctx, first))
	require.NoError(t, repo.CreateCategory(ctx, second))
	assert.Equal(t, "go", first.Slug)
	assert.Equal(t, "go-1", second.Slug)

	tagA := &models.Tag{Name: "C++"}
	tagB := &models.Tag{Name: "C--"}
	require.NoError(t, repo.CreateTag(ctx, tagA))
	require.NoError(t, repo.CreateTag(ctx, tagB))
	assert.Equal(t, tagA.Slug+"-1", tagB.Slug)
	assert.NotEqual(t, tagA.Slug, tagB.Slug)
}

func TestTaxonomyRepository_TagCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "author", true)

	tags, err := repo.FindOrCreateTags(ctx, []string{"Testing", "Benchmarks"})
	require.NoError(t, err)
	require.Len(t, tags, 2)

	popular := seedPost(t, db, author, "Popular", true, time.Time{})
	second := seedPost(t, db, author, "Second", true, time.Time{})
	draft := seedPost(t, db, author, "Draft", false, time.Time{})

	require.NoError(t, db.Model(&models.Post{ID: popular.ID}).Association("Tags").Append(&tags[0]))
	require.NoError(t, db.Model(&models.Post{ID: second.ID}).Association("Tags").Append(&tags[0], &tags[1]))
	require.NoError(t, db.Model(&models.Post{ID: draft.ID}).Association("Tags").Append(&tags[1]))

	got, err := repo.ListTagsWithCounts(ctx, 20)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Descending by published post count
	assert.Equal(t, "testing", got[0].Slug)
	assert.Equal(t, 2, got[0].PostCount)
	assert.Equal(t, "benchmarks", got[1].Slug)
	assert.Equal(t, 1, got[1].PostCount)
}

func TestTaxonomyRepository_FindOrCreateTags_Dedupes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()

	first, err := repo.FindOrCreateTags(ctx, []string{"Go", "go", "GO"})
	require.NoError(t, err)
	assert.Len(t, first, 1)

	again, err := repo.FindOrCreateTags(ctx, []string{"Go"})
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, first[0].ID, again[0].ID)

	var total int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestTaxonomyRepository_DeleteCategoryDetachesPosts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaxonomyRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "author", true)

	category := &models.Category{Name: "Doomed"}
	require.NoError(t, repo.CreateCategory(ctx, category))
	post := seedPost(t, db, author, "Orphan To Be", true, time.Time{})
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).Update("category_id", category.ID).Error)

	require.NoError(t, repo.DeleteCategory(ctx, category.ID))

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}
