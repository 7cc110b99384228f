package service

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/policy"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/validate"

	"gorm.io/gorm"
)

// ErrAlreadyReviewed: at most one review per (author, title).
var ErrAlreadyReviewed = errors.New("you have already reviewed this title")

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, author *models.User, titleID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// requireTitle resolves the path-scoping title or reports ErrNotFound.
func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	_, err := s.titleRepo.GetByID(ctx, titleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&review))
	}
	return dto.NewPaginatedReviewResponse(responses, int(total), page, pageSize), nil
}

func (s *reviewService) GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Create(ctx context.Context, author *models.User, titleID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := validate.Score(in.Score); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review := &models.Review{
		Text:     in.Text,
		Score:    in.Score,
		TitleID:  titleID,
		AuthorID: author.ID,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	// reload so the response carries the author username
	return s.GetByID(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !policy.CanModifyAuthored(actor.ID, review.AuthorID, actor.Role) {
		return nil, ErrForbidden
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		if err := validate.Score(*in.Score); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		review.Score = *in.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, titleID, reviewID)
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if !policy.CanModifyAuthored(actor.ID, review.AuthorID, actor.Role) {
		return ErrForbidden
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}
