// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"studyglobe/internal/cache"
	"studyglobe/internal/models"

	"gorm.io/gorm"
)

// PostcardRepository defines the interface for postcard data operations
type PostcardRepository interface {
	List(ctx context.Context) ([]models.Postcard, error)
	GetByID(ctx context.Context, id uint) (*models.Postcard, error)
	Create(ctx context.Context, postcard *models.Postcard) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, id uint) (int, error)
}

type postcardRepository struct {
	db *gorm.DB
}

// NewPostcardRepository creates a new postcard repository
func NewPostcardRepository(db *gorm.DB) PostcardRepository {
	return &postcardRepository{db: db}
}

// List returns every postcard, newest first.
func (r *postcardRepository) List(ctx context.Context) ([]models.Postcard, error) {
	postcards := []models.Postcard{}
	err := cache.Aside(ctx, cache.PostcardsListKey, &postcards, cache.PostcardsListTTL, func() error {
		return r.db.WithContext(ctx).
			Order("created_at DESC").
			Order("id DESC").
			Find(&postcards).Error
	})
	if err != nil {
		return nil, err
	}
	return postcards, nil
}

func (r *postcardRepository) GetByID(ctx context.Context, id uint) (*models.Postcard, error) {
	var postcard models.Postcard
	if err := r.db.WithContext(ctx).First(&postcard, id).Error; err != nil {
		return nil, err
	}
	return &postcard, nil
}

func (r *postcardRepository) Create(ctx context.Context, postcard *models.Postcard) error {
	err := r.db.WithContext(ctx).Create(postcard).Error
	if err == nil {
		cache.InvalidatePostcards(ctx)
	}
	return err
}

// Delete removes the postcard; gorm.ErrRecordNotFound when nothing matched.
func (r *postcardRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Postcard{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePostcards(ctx)
	return nil
}

// Like increments the like counter atomically and returns the new count.
func (r *postcardRepository) Like(ctx context.Context, id uint) (int, error) {
	var likes int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Postcard{}).
			Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Postcard{}).
			Where("id = ?", id).
			Pluck("likes", &likes).Error
	})
	if err != nil {
		return 0, err
	}
	cache.InvalidatePostcards(ctx)
	return likes, nil
}
