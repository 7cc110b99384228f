package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

// ratingSelect attaches the derived average review score to each row.
// AVG over zero rows is NULL, which scans into a nil *float64.
const ratingSelect = "titles.*, (SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// TitleFilter narrows the title listing. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, t *models.Title) error
	Update(ctx context.Context, t *models.Title) error
	Delete(ctx context.Context, id int64) error
	ReplaceGenres(ctx context.Context, titleID int64, genres []models.Genre) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) filtered(ctx context.Context, filter TitleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Title{})

	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres ON genres.id = tg.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != 0 {
		q = q.Where("titles.year = ?", filter.Year)
	}
	return q
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	if err := r.filtered(ctx, filter).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.filtered(ctx, filter).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		Order("titles.name asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}

	return list, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	err := r.db.WithContext(ctx).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		First(&t, "titles.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titleRepository) Create(ctx context.Context, t *models.Title) error {
	if err := translateError(r.db.WithContext(ctx).Create(t).Error); err != nil {
		return err
	}
	return nil
}

func (r *titleRepository) Update(ctx context.Context, t *models.Title) error {
	// Save would try to upsert the preloaded associations too, so update
	// the bare columns and manage genres through ReplaceGenres.
	err := r.db.WithContext(ctx).Model(&models.Title{ID: t.ID}).
		Select("name", "year", "description", "category_id").
		Updates(map[string]interface{}{
			"name":        t.Name,
			"year":        t.Year,
			"description": t.Description,
			"category_id": t.CategoryID,
		}).Error
	return translateError(err)
}

// Delete removes the title; reviews and their comments go with it
// (ON DELETE CASCADE down the chain).
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, titleID int64, genres []models.Genre) error {
	t := models.Title{ID: titleID}
	if err := r.db.WithContext(ctx).Model(&t).Association("Genres").Replace(&genres); err != nil {
		return fmt.Errorf("replace genres: %w", err)
	}
	return nil
}
