package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
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

func setupAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthHandler(svc).RegisterRoutes(r.Group("/v1/auth"))
	return r
}

func TestSendCode_OK(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("RequestCode", mock.Anything, "a@b.com").Return(nil)
	r := setupAuthRouter(mockAuth)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/auth/email",
		strings.NewReader(`{"email":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"a@b.com"}`, w.Body.String())
	mockAuth.AssertExpectations(t)
}

func TestSendCode_InvalidEmail(t *testing.T) {
	mockAuth := new(MockAuthService)
	r := setupAuthRouter(mockAuth)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/auth/email",
		strings.NewReader(`{"email":"not-an-address"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuth.AssertNotCalled(t, "RequestCode", mock.Anything, mock.Anything)
}

func TestIssueToken_OK(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("IssueToken", mock.Anything, "a@b.com", "code-123").Return("jwt-token", nil)
	r := setupAuthRouter(mockAuth)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/auth/token",
		strings.NewReader(`{"email":"a@b.com","confirmation_code":"code-123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"jwt-token"}`, w.Body.String())
}

func TestIssueToken_UnknownUserIs404(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("IssueToken", mock.Anything, "ghost@b.com", "code-123").
		Return("", service.ErrUserNotFound)
	r := setupAuthRouter(mockAuth)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/auth/token",
		strings.NewReader(`{"email":"ghost@b.com","confirmation_code":"code-123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueToken_WrongCodeIs400(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("IssueToken", mock.Anything, "a@b.com", "bad").
		Return("", service.ErrInvalidCode)
	r := setupAuthRouter(mockAuth)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/auth/token",
		strings.NewReader(`{"email":"a@b.com","confirmation_code":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
