package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/mailer"
	"reviewhub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidCode  = errors.New("invalid or expired confirmation code")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carried by an access token. The token asserts identity; the
// middleware re-reads the user per request, so Role here is only the
// role held at issuance time.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// RequestCode creates or fetches the user for the email and mails a
	// single-use confirmation code.
	RequestCode(ctx context.Context, email string) error
	// IssueToken exchanges (email, code) for a bearer access token.
	IssueToken(ctx context.Context, email, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	codeRepo       repository.ConfirmationCodeRepository
	mail           mailer.Sender
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.ConfirmationCodeRepository,
	mail mailer.Sender,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codeRepo:       codeRepo,
		mail:           mail,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

func (s *authService) RequestCode(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.createUserForEmail(ctx, email)
	}
	if err != nil {
		return err
	}

	code := uuid.New().String()
	hash, err := auth.HashPassword(code)
	if err != nil {
		return err
	}

	// a re-request overwrites the previous code, only the latest is valid
	if err := s.codeRepo.Store(ctx, user.ID, hash); err != nil {
		return err
	}

	body := fmt.Sprintf("Your confirmation code is %s", code)
	return s.mail.Send(ctx, email, "Your confirmation code", body)
}

// createUserForEmail registers a fresh user with the username derived
// from the local part of the address. On a username collision a short
// random suffix is appended.
func (s *authService) createUserForEmail(ctx context.Context, email string) (*models.User, error) {
	localPart := email
	if idx := strings.LastIndex(email, "@"); idx > 0 {
		localPart = email[:idx]
	}

	username := localPart
	for attempt := 0; attempt < 3; attempt++ {
		user := &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
			Active:   true,
		}
		err := s.userRepo.Create(ctx, user)
		if errors.Is(err, repository.ErrDuplicate) {
			username = fmt.Sprintf("%s_%s", localPart, uuid.New().String()[:8])
			continue
		}
		if err != nil {
			return nil, err
		}
		return user, nil
	}
	return nil, repository.ErrDuplicate
}

func (s *authService) IssueToken(ctx context.Context, email, code string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if !user.Active {
		return "", ErrUserNotFound
	}

	hash, err := s.codeRepo.Consume(ctx, user.ID)
	if errors.Is(err, repository.ErrCodeNotFound) {
		return "", ErrInvalidCode
	}
	if err != nil {
		return "", err
	}
	if err := auth.VerifyPassword(hash, code); err != nil {
		return "", ErrInvalidCode
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
