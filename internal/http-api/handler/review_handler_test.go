package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReviewService mocks the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	args := m.Called(ctx, titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedReviewResponse), args.Error(1)
}

func (m *MockReviewService) GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, author *models.User, titleID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, author, titleID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, actor, titleID, reviewID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	args := m.Called(ctx, actor, titleID, reviewID)
	return args.Error(0)
}

// asUser simulates an authenticated request the way Identify would
// establish it.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("currentUser", user)
		c.Next()
	}
}

func setupReviewRouter(svc service.ReviewService, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	if user != nil {
		v1.Use(asUser(user))
	}
	NewReviewHandler(svc).RegisterRoutes(v1.Group("/titles"))
	return r
}

func TestReviewHandlerCreate_Unauthenticated(t *testing.T) {
	mockSvc := new(MockReviewService)
	r := setupReviewRouter(mockSvc, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/titles/7/reviews",
		strings.NewReader(`{"text":"great","score":9}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewHandlerCreate_AuthorInBodyRejected(t *testing.T) {
	mockSvc := new(MockReviewService)
	user := &models.User{ID: "u1", Username: "alice", Role: models.RoleUser, Active: true}
	r := setupReviewRouter(mockSvc, user)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/titles/7/reviews",
		strings.NewReader(`{"text":"great","score":9,"author":"mallory"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewHandlerCreate_OK(t *testing.T) {
	mockSvc := new(MockReviewService)
	user := &models.User{ID: "u1", Username: "alice", Role: models.RoleUser, Active: true}
	r := setupReviewRouter(mockSvc, user)

	mockSvc.On("Create", mock.Anything, user, int64(7), dto.CreateReviewDTO{Text: "great", Score: 9}).
		Return(&dto.ReviewResponse{ID: 42, Text: "great", Score: 9, Author: "alice"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/titles/7/reviews",
		strings.NewReader(`{"text":"great","score":9}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"author":"alice"`)
	mockSvc.AssertExpectations(t)
}

func TestReviewHandlerCreate_ScoreOutOfRange(t *testing.T) {
	mockSvc := new(MockReviewService)
	user := &models.User{ID: "u1", Role: models.RoleUser, Active: true}
	r := setupReviewRouter(mockSvc, user)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/titles/7/reviews",
		strings.NewReader(`{"text":"great","score":11}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandlerUpdate_ForbiddenMapsTo403(t *testing.T) {
	mockSvc := new(MockReviewService)
	user := &models.User{ID: "u2", Username: "bob", Role: models.RoleUser, Active: true}
	r := setupReviewRouter(mockSvc, user)

	mockSvc.On("Update", mock.Anything, user, int64(7), int64(42), mock.AnythingOfType("dto.UpdateReviewDTO")).
		Return(nil, service.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/v1/titles/7/reviews/42",
		strings.NewReader(`{"text":"mine now"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewHandlerList_Public(t *testing.T) {
	mockSvc := new(MockReviewService)
	r := setupReviewRouter(mockSvc, nil)

	resp := dto.NewPaginatedReviewResponse([]dto.ReviewResponse{{ID: 1, Text: "ok", Score: 7, Author: "alice"}}, 1, 1, 20)
	mockSvc.On("ListByTitle", mock.Anything, int64(7), 1, 20).Return(resp, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/titles/7/reviews", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestReviewHandlerGet_MissingMapsTo404(t *testing.T) {
	mockSvc := new(MockReviewService)
	r := setupReviewRouter(mockSvc, nil)

	mockSvc.On("GetByID", mock.Anything, int64(7), int64(404)).Return(nil, service.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/titles/7/reviews/404", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
