package handler

import (
	"errors"
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the auth endpoints on /v1/auth
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/email", h.SendCode)
	rg.POST("/token", h.IssueToken)
}

// SendCode creates or fetches the user for the address and mails a
// confirmation code.
// POST /v1/auth/email/
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.RequestCode(c.Request.Context(), req.Email); err != nil {
		// mail failure included: best-effort delivery, no retry
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EmailResponse{Email: req.Email})
}

// IssueToken exchanges (email, confirmation_code) for an access token.
// POST /v1/auth/token/
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), req.Email, req.ConfirmationCode)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, service.ErrInvalidCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
