package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/validate"

	"gorm.io/gorm"
)

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, g *models.Genre) error
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo *repository.GenreRepo
}

func NewGenreService(r *repository.GenreRepo) GenreService {
	return &genreService{repo: r}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.repo.List(ctx, search, page, pageSize)
}

func (s *genreService) Create(ctx context.Context, g *models.Genre) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return fmt.Errorf("%w: genre name required", ErrValidation)
	}
	if err := validate.Slug(g.Slug); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	err := s.repo.Create(ctx, g)
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: genre name or slug taken", ErrConflict)
	}
	return err
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	err := s.repo.DeleteBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
