package service

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/validate"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, in dto.CreateTitleDTO) (*models.Title, error)
	Update(ctx context.Context, id int64, in dto.UpdateTitleDTO) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo *repository.CategoryRepo
	genreRepo    *repository.GenreRepo
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo *repository.CategoryRepo,
	genreRepo *repository.GenreRepo,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter, page, pageSize)
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	t, err := s.titleRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *titleService) Create(ctx context.Context, in dto.CreateTitleDTO) (*models.Title, error) {
	if in.Year != nil {
		if err := validate.Year(*in.Year); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	title := &models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if in.Category != nil {
		category, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genres, err := s.resolveGenres(ctx, in.Genre)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(ctx, title); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: title name taken", ErrConflict)
		}
		return nil, err
	}

	if len(genres) > 0 {
		if err := s.titleRepo.ReplaceGenres(ctx, title.ID, genres); err != nil {
			return nil, err
		}
	}

	// reload so the response carries nested category/genres and the rating
	return s.GetByID(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, in dto.UpdateTitleDTO) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := validate.Year(*in.Year); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		title.Year = in.Year
	}
	if in.Description != nil {
		title.Description = in.Description
	}
	if in.Category != nil {
		if *in.Category == "" {
			title.CategoryID = nil
		} else {
			category, err := s.resolveCategory(ctx, *in.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
		}
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: title name taken", ErrConflict)
		}
		return nil, err
	}

	if in.Genre != nil {
		genres, err := s.resolveGenres(ctx, *in.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, id, genres); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	err := s.titleRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, slug)
	}
	return category, err
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genreRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, fmt.Errorf("%w: unknown genre slug", ErrValidation)
	}
	return genres, nil
}
