package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RequestCode(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) IssueToken(ctx context.Context, email, code string) (string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func identifyRouter(auth service.AuthService, users *MockUserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identify(auth, users))
	r.GET("/whoami", func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.Username})
	})
	return r
}

func TestIdentify_AnonymousPassesThrough(t *testing.T) {
	r := identifyRouter(new(MockAuthService), new(MockUserRepository))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())
}

func TestIdentify_MalformedHeader(t *testing.T) {
	r := identifyRouter(new(MockAuthService), new(MockUserRepository))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "token-without-scheme")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentify_InvalidToken(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("ValidateToken", "bad-token").Return(nil, service.ErrInvalidToken)
	r := identifyRouter(mockAuth, new(MockUserRepository))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentify_SetsCurrentUser(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUsers := new(MockUserRepository)
	mockAuth.On("ValidateToken", "good-token").
		Return(&service.Claims{UserID: "u1", Username: "alice", Role: models.RoleUser}, nil)
	mockUsers.On("FindByID", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Username: "alice", Role: models.RoleUser, Active: true}, nil)
	r := identifyRouter(mockAuth, mockUsers)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"alice"}`, w.Body.String())
}

func TestIdentify_DeactivatedUserRejected(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUsers := new(MockUserRepository)
	mockAuth.On("ValidateToken", "good-token").
		Return(&service.Claims{UserID: "u1", Username: "alice", Role: models.RoleUser}, nil)
	mockUsers.On("FindByID", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Username: "alice", Active: false}, nil)
	r := identifyRouter(mockAuth, mockUsers)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// demotion takes effect on the next request even though the old token
// still carries the old role
func TestIdentify_RoleReadFromStoreNotToken(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUsers := new(MockUserRepository)
	mockAuth.On("ValidateToken", "good-token").
		Return(&service.Claims{UserID: "u1", Username: "alice", Role: models.RoleAdmin}, nil)
	mockUsers.On("FindByID", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Username: "alice", Role: models.RoleUser, Active: true}, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identify(mockAuth, mockUsers))
	r.GET("/role", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": CurrentUser(c).Role})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/role", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"user"}`, w.Body.String())
}
