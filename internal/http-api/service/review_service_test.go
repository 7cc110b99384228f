package service

import (
	"context"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, titleID, id int64) (*models.Review, error) {
	args := m.Called(ctx, titleID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(ctx, titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

// MockTitleRepository mocks the TitleRepository interface
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) Create(ctx context.Context, t *models.Title) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTitleRepository) Update(ctx context.Context, t *models.Title) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTitleRepository) ReplaceGenres(ctx context.Context, titleID int64, genres []models.Genre) error {
	args := m.Called(ctx, titleID, genres)
	return args.Error(0)
}

func TestReviewCreate_Success(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := NewReviewService(mockReviewRepo, mockTitleRepo)

	author := &models.User{ID: "u1", Username: "alice", Role: models.RoleUser}
	mockTitleRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Title{ID: 7}, nil)
	mockReviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Review")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Review).ID = 42
		}).
		Return(nil)
	stored := &models.Review{ID: 42, Text: "great", Score: 9, TitleID: 7, AuthorID: "u1", Author: models.User{Username: "alice"}}
	mockReviewRepo.On("GetByID", mock.Anything, int64(7), int64(42)).Return(stored, nil)

	resp, err := reviewService.Create(context.Background(), author, 7, dto.CreateReviewDTO{Text: "great", Score: 9})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "alice", resp.Author)
	assert.Equal(t, 9, resp.Score)
	mockReviewRepo.AssertExpectations(t)
}

func TestReviewCreate_TitleNotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := NewReviewService(mockReviewRepo, mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := reviewService.Create(context.Background(), &models.User{ID: "u1"}, 404, dto.CreateReviewDTO{Text: "x", Score: 5})

	assert.ErrorIs(t, err, ErrNotFound)
	mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewCreate_Duplicate(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := NewReviewService(mockReviewRepo, mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Title{ID: 7}, nil)
	mockReviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Review")).
		Return(repository.ErrDuplicate)

	_, err := reviewService.Create(context.Background(), &models.User{ID: "u1"}, 7, dto.CreateReviewDTO{Text: "again", Score: 5})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewCreate_ScoreOutOfRange(t *testing.T) {
	reviewService := NewReviewService(new(MockReviewRepository), new(MockTitleRepository))

	_, err := reviewService.Create(context.Background(), &models.User{ID: "u1"}, 7, dto.CreateReviewDTO{Text: "x", Score: 11})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestReviewUpdate_NotAuthorNotModerator(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	reviewService := NewReviewService(mockReviewRepo, new(MockTitleRepository))

	stored := &models.Review{ID: 42, TitleID: 7, AuthorID: "owner"}
	mockReviewRepo.On("GetByID", mock.Anything, int64(7), int64(42)).Return(stored, nil)

	actor := &models.User{ID: "someone-else", Role: models.RoleUser}
	text := "edited"
	_, err := reviewService.Update(context.Background(), actor, 7, 42, dto.UpdateReviewDTO{Text: &text})

	assert.ErrorIs(t, err, ErrForbidden)
	mockReviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReviewUpdate_ModeratorMayEdit(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	reviewService := NewReviewService(mockReviewRepo, new(MockTitleRepository))

	stored := &models.Review{ID: 42, Text: "old", Score: 3, TitleID: 7, AuthorID: "owner"}
	mockReviewRepo.On("GetByID", mock.Anything, int64(7), int64(42)).Return(stored, nil)
	mockReviewRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Review")).Return(nil)

	actor := &models.User{ID: "mod-1", Role: models.RoleModerator}
	text := "cleaned up"
	resp, err := reviewService.Update(context.Background(), actor, 7, 42, dto.UpdateReviewDTO{Text: &text})

	require.NoError(t, err)
	assert.Equal(t, "cleaned up", resp.Text)
	assert.Equal(t, 3, resp.Score)
}

func TestReviewDelete_Author(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	reviewService := NewReviewService(mockReviewRepo, new(MockTitleRepository))

	stored := &models.Review{ID: 42, TitleID: 7, AuthorID: "u1"}
	mockReviewRepo.On("GetByID", mock.Anything, int64(7), int64(42)).Return(stored, nil)
	mockReviewRepo.On("Delete", mock.Anything, int64(42)).Return(nil)

	err := reviewService.Delete(context.Background(), &models.User{ID: "u1", Role: models.RoleUser}, 7, 42)

	assert.NoError(t, err)
	mockReviewRepo.AssertExpectations(t)
}

func TestReviewDelete_WrongTitlePath(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	reviewService := NewReviewService(mockReviewRepo, new(MockTitleRepository))

	mockReviewRepo.On("GetByID", mock.Anything, int64(8), int64(42)).Return(nil, gorm.ErrRecordNotFound)

	err := reviewService.Delete(context.Background(), &models.User{ID: "u1"}, 8, 42)

	assert.ErrorIs(t, err, ErrNotFound)
}
