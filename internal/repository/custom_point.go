package repository

import (
	"context"

	"studyglobe/internal/cache"
	"studyglobe/internal/models"

	"gorm.io/gorm"
)

// CustomPointRepository defines the interface for custom point data operations
type CustomPointRepository interface {
	List(ctx context.Context) ([]models.CustomPoint, error)
	GetByID(ctx context.Context, id uint) (*models.CustomPoint, error)
	Create(ctx context.Context, point *models.CustomPoint) error
	Update(ctx context.Context, point *models.CustomPoint) error
	Delete(ctx context.Context, id uint) error
}

type customPointRepository struct {
	db *gorm.DB
}

// NewCustomPointRepository creates a new custom point repository
func NewCustomPointRepository(db *gorm.DB) CustomPointRepository {
	return &customPointRepository{db: db}
}

func (r *customPointRepository) List(ctx context.Context) ([]models.CustomPoint, error) {
	points := []models.CustomPoint{}
	err := cache.Aside(ctx, cache.CustomPointsListKey, &points, cache.CustomPointsListTTL, func() error {
		return r.db.WithContext(ctx).Order("id ASC").Find(&points).Error
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (r *customPointRepository) GetByID(ctx context.Context, id uint) (*models.CustomPoint, error) {
	var point models.CustomPoint
	if err := r.db.WithContext(ctx).First(&point, id).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *customPointRepository) Create(ctx context.Context, point *models.CustomPoint) error {
	err := r.db.WithContext(ctx).Create(point).Error
	if err == nil {
		cache.InvalidateCustomPoints(ctx)
	}
	return err
}

func (r *customPointRepository) Update(ctx context.Context, point *models.CustomPoint) error {
	err := r.db.WithContext(ctx).Save(point).Error
	if err == nil {
		cache.InvalidateCustomPoints(ctx)
	}
	return err
}

func (r *customPointRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.CustomPoint{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateCustomPoints(ctx)
	return nil
}
