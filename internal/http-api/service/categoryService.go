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

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo *repository.CategoryRepo
}

func NewCategoryService(r *repository.CategoryRepo) CategoryService {
	return &categoryService{repo: r}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.repo.List(ctx, search, page, pageSize)
}

func (s *categoryService) Create(ctx context.Context, c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: category name required", ErrValidation)
	}
	if err := validate.Slug(c.Slug); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	err := s.repo.Create(ctx, c)
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: category name or slug taken", ErrConflict)
	}
	return err
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	err := s.repo.DeleteBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
