package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	getBySlugFn      func(context.Context, string, bool, repository.Viewer) (*models.Post, error)
	listFn           func(context.Context, repository.PostFilter, repository.Viewer) ([]*models.Post, error)
	countByFilterFn  func(context.Context, repository.PostFilter) (int64, error)
	listAdminFn      func(context.Context, repository.AdminFilter) ([]*models.Post, error)
	countAdminFn     func(context.Context, repository.AdminFilter) (int64, error)
	relatedFn        func(context.Context, *models.Post, int) ([]*models.Post, error)
	popularFn        func(context.Context, int) ([]*models.Post, error)
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
	incrementViewsFn func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string, publishedOnly bool, viewer repository.Viewer) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug, publishedOnly, viewer)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, viewer repository.Viewer) ([]*models.Post, error) {
	return s.listFn(ctx, filter, viewer)
}
func (s *postRepoStub) CountByFilter(ctx context.Context, filter repository.PostFilter) (int64, error) {
	return s.countByFilterFn(ctx, filter)
}
func (s *postRepoStub) ListAdmin(ctx context.Context, filter repository.AdminFilter) ([]*models.Post, error) {
	return s.listAdminFn(ctx, filter)
}
func (s *postRepoStub) CountAdmin(ctx context.Context, filter repository.AdminFilter) (int64, error) {
	return s.countAdminFn(ctx, filter)
}
func (s *postRepoStub) Related(ctx context.Context, post *models.Post, limit int) ([]*models.Post, error) {
	return s.relatedFn(ctx, post, limit)
}
func (s *postRepoStub) Popular(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.popularFn(ctx, limit)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		getBySlugFn: func(_ context.Context, _ string, _ bool, _ repository.Viewer) (*models.Post, error) {
			return &models.Post{}, nil
		},
		listFn: func(_ context.Context, _ repository.PostFilter, _ repository.Viewer) ([]*models.Post, error) {
			return nil, nil
		},
		countByFilterFn: func(_ context.Context, _ repository.PostFilter) (int64, error) { return 0, nil },
		listAdminFn:     func(_ context.Context, _ repository.AdminFilter) ([]*models.Post, error) { return nil, nil },
		countAdminFn:    func(_ context.Context, _ repository.AdminFilter) (int64, error) { return 0, nil },
		relatedFn:       func(_ context.Context, _ *models.Post, _ int) ([]*models.Post, error) { return nil, nil },
		popularFn:       func(_ context.Context, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		incrementViewsFn: func(_ context.Context, _ uint) error {
			return nil
		},
	}
}

// engagementRepoStub is a stub for repository.EngagementRepository.
type engagementRepoStub struct {
	isLikedFn    func(context.Context, uint, string) (bool, error)
	likeFn       func(context.Context, uint, string) error
	unlikeFn     func(context.Context, uint, string) error
	countLikesFn func(context.Context, uint) (int64, error)
	isSavedFn    func(context.Context, uint, uint) (bool, error)
	saveFn       func(context.Context, uint, uint) error
	unsaveFn     func(context.Context, uint, uint) error
	listSavedFn  func(context.Context, uint, int, int) ([]*models.SavedPost, error)
	countSavedFn func(context.Context, uint) (int64, error)
}

func (s *engagementRepoStub) IsLiked(ctx context.Context, postID uint, token string) (bool, error) {
	return s.isLikedFn(ctx, postID, token)
}
func (s *engagementRepoStub) Like(ctx context.Context, postID uint, token string) error {
	return s.likeFn(ctx, postID, token)
}
func (s *engagementRepoStub) Unlike(ctx context.Context, postID uint, token string) error {
	return s.unlikeFn(ctx, postID, token)
}
func (s *engagementRepoStub) CountLikes(ctx context.Context, postID uint) (int64, error) {
	return s.countLikesFn(ctx, postID)
}
func (s *engagementRepoStub) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isSavedFn(ctx, userID, postID)
}
func (s *engagementRepoStub) Save(ctx context.Context, userID, postID uint) error {
	return s.saveFn(ctx, userID, postID)
}
func (s *engagementRepoStub) Unsave(ctx context.Context, userID, postID uint) error {
	return s.unsaveFn(ctx, userID, postID)
}
func (s *engagementRepoStub) ListSaved(ctx context.Context, userID uint, limit, offset int) ([]*models.SavedPost, error) {
	return s.listSavedFn(ctx, userID, limit, offset)
}
func (s *engagementRepoStub) CountSaved(ctx context.Context, userID uint) (int64, error) {
	return s.countSavedFn(ctx, userID)
}

func noopEngagementRepo() *engagementRepoStub {
	return &engagementRepoStub{
		isLikedFn:    func(_ context.Context, _ uint, _ string) (bool, error) { return false, nil },
		likeFn:       func(_ context.Context, _ uint, _ string) error { return nil },
		unlikeFn:     func(_ context.Context, _ uint, _ string) error { return nil },
		countLikesFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		isSavedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		saveFn:       func(_ context.Context, _, _ uint) error { return nil },
		unsaveFn:     func(_ context.Context, _, _ uint) error { return nil },
		listSavedFn:  func(_ context.Context, _ uint, _, _ int) ([]*models.SavedPost, error) { return nil, nil },
		countSavedFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listByPostFn    func(context.Context, uint, bool) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteFn        func(context.Context, uint) error
	countApprovedFn func(context.Context, uint) (int64, error)
	countAllFn      func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, approvedOnly bool) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, approvedOnly)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) CountApproved(ctx context.Context, postID uint) (int64, error) {
	return s.countApprovedFn(ctx, postID)
}
func (s *commentRepoStub) CountAll(ctx context.Context, postID uint) (int64, error) {
	return s.countAllFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn:    func(_ context.Context, _ uint, _ bool) ([]*models.Comment, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		countApprovedFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countAllFn:      func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// taxonomyRepoStub is a stub for repository.TaxonomyRepository.
type taxonomyRepoStub struct {
	createCategoryFn func(context.Context, *models.Category) error
	getCategoryFn    func(context.Context, string) (*models.Category, error)
	listCategoriesFn func(context.Context) ([]*models.Category, error)
	deleteCategoryFn func(context.Context, uint) error
	createTagFn      func(context.Context, *models.Tag) error
	getTagFn         func(context.Context, string) (*models.Tag, error)
	findOrCreateFn   func(context.Context, []string) ([]models.Tag, error)
	listTagsFn       func(context.Context, int) ([]*models.Tag, error)
	deleteTagFn      func(context.Context, uint) error
}

func (s *taxonomyRepoStub) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.createCategoryFn(ctx, category)
}
func (s *taxonomyRepoStub) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getCategoryFn(ctx, slug)
}
func (s *taxonomyRepoStub) ListCategoriesWithCounts(ctx context.Context) ([]*models.Category, error) {
	return s.listCategoriesFn(ctx)
}
func (s *taxonomyRepoStub) DeleteCategory(ctx context.Context, id uint) error {
	return s.deleteCategoryFn(ctx, id)
}
func (s *taxonomyRepoStub) CreateTag(ctx context.Context, tag *models.Tag) error {
	return s.createTagFn(ctx, tag)
}
func (s *taxonomyRepoStub) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return s.getTagFn(ctx, slug)
}
func (s *taxonomyRepoStub) FindOrCreateTags(ctx context.Context, names []string) ([]models.Tag, error) {
	return s.findOrCreateFn(ctx, names)
}
func (s *taxonomyRepoStub) ListTagsWithCounts(ctx context.Context, limit int) ([]*models.Tag, error) {
	return s.listTagsFn(ctx, limit)
}
func (s *taxonomyRepoStub) DeleteTag(ctx context.Context, id uint) error {
	return s.deleteTagFn(ctx, id)
}

func noopTaxonomyRepo() *taxonomyRepoStub {
	return &taxonomyRepoStub{
		createCategoryFn: func(_ context.Context, _ *models.Category) error { return nil },
		getCategoryFn:    func(_ context.Context, _ string) (*models.Category, error) { return &models.Category{}, nil },
		listCategoriesFn: func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		deleteCategoryFn: func(_ context.Context, _ uint) error { return nil },
		createTagFn:      func(_ context.Context, _ *models.Tag) error { return nil },
		getTagFn:         func(_ context.Context, _ string) (*models.Tag, error) { return &models.Tag{}, nil },
		findOrCreateFn:   func(_ context.Context, _ []string) ([]models.Tag, error) { return nil, nil },
		listTagsFn:       func(_ context.Context, _ int) ([]*models.Tag, error) { return nil, nil },
		deleteTagFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{ID: 1}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return &models.User{ID: 1}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return &models.User{ID: 1}, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
	}
}

// staffUserRepo returns users that may manage posts.
func staffUserRepo() *userRepoStub {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsStaff: true}, nil
	}
	return repo
}

// pageRepoStub is a stub for repository.PageRepository.
type pageRepoStub struct {
	getAboutFn      func(context.Context) (*models.AboutPage, error)
	updateAboutFn   func(context.Context, *models.AboutPage) error
	getContactFn    func(context.Context) (*models.ContactPage, error)
	updateContactFn func(context.Context, *models.ContactPage) error
}

func (s *pageRepoStub) GetAboutPage(ctx context.Context) (*models.AboutPage, error) {
	return s.getAboutFn(ctx)
}
func (s *pageRepoStub) UpdateAboutPage(ctx context.Context, page *models.AboutPage) error {
	return s.updateAboutFn(ctx, page)
}
func (s *pageRepoStub) GetContactPage(ctx context.Context) (*models.ContactPage, error) {
	return s.getContactFn(ctx)
}
func (s *pageRepoStub) UpdateContactPage(ctx context.Context, page *models.ContactPage) error {
	return s.updateContactFn(ctx, page)
}

func noopPageRepo() *pageRepoStub {
	return &pageRepoStub{
		getAboutFn:      func(_ context.Context) (*models.AboutPage, error) { return &models.AboutPage{}, nil },
		updateAboutFn:   func(_ context.Context, _ *models.AboutPage) error { return nil },
		getContactFn:    func(_ context.Context) (*models.ContactPage, error) { return &models.ContactPage{}, nil },
		updateContactFn: func(_ context.Context, _ *models.ContactPage) error { return nil },
	}
}

// contactRepoStub is a stub for repository.ContactRepository.
type contactRepoStub struct {
	createFn   func(context.Context, *models.ContactMessage) error
	listFn     func(context.Context, int, int) ([]*models.ContactMessage, error)
	countFn    func(context.Context) (int64, error)
	markReadFn func(context.Context, uint) error
}

func (s *contactRepoStub) Create(ctx context.Context, message *models.ContactMessage) error {
	return s.createFn(ctx, message)
}
func (s *contactRepoStub) List(ctx context.Context, limit, offset int) ([]*models.ContactMessage, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *contactRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *contactRepoStub) MarkRead(ctx context.Context, id uint) error {
	return s.markReadFn(ctx, id)
}

func noopContactRepo() *contactRepoStub {
	return &contactRepoStub{
		createFn:   func(_ context.Context, _ *models.ContactMessage) error { return nil },
		listFn:     func(_ context.Context, _, _ int) ([]*models.ContactMessage, error) { return nil, nil },
		countFn:    func(_ context.Context) (int64, error) { return 0, nil },
		markReadFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// statsRepoStub is a stub for repository.StatsRepository.
type statsRepoStub struct {
	globalFn    func(context.Context) (*repository.GlobalStats, error)
	dashboardFn func(context.Context) (*repository.DashboardStats, error)
	monthlyFn   func(context.Context, int) ([]repository.MonthBucket, error)
}

func (s *statsRepoStub) GlobalStats(ctx context.Context) (*repository.GlobalStats, error) {
	return s.globalFn(ctx)
}
func (s *statsRepoStub) DashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.dashboardFn(ctx)
}
func (s *statsRepoStub) MonthlyPostCounts(ctx context.Context, months int) ([]repository.MonthBucket, error) {
	return s.monthlyFn(ctx, months)
}

func noopStatsRepo() *statsRepoStub {
	return &statsRepoStub{
		globalFn:    func(_ context.Context) (*repository.GlobalStats, error) { return &repository.GlobalStats{}, nil },
		dashboardFn: func(_ context.Context) (*repository.DashboardStats, error) { return &repository.DashboardStats{}, nil },
		monthlyFn:   func(_ context.Context, _ int) ([]repository.MonthBucket, error) { return nil, nil },
	}
}

// assertErrorCode asserts that err is an AppError carrying the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, "VALIDATION_ERROR")
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, "UNAUTHORIZED")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, "FORBIDDEN")
}
