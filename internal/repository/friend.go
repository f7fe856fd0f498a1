package repository

import (
	"context"

	"studyglobe/internal/cache"
	"studyglobe/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend data operations
type FriendRepository interface {
	List(ctx context.Context) ([]models.Friend, error)
	Create(ctx context.Context, friend *models.Friend) error
	Count(ctx context.Context) (int64, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) List(ctx context.Context) ([]models.Friend, error) {
	friends := []models.Friend{}
	err := cache.Aside(ctx, cache.FriendsListKey, &friends, cache.FriendsListTTL, func() error {
		return r.db.WithContext(ctx).Order("id ASC").Find(&friends).Error
	})
	if err != nil {
		return nil, err
	}
	return friends, nil
}

func (r *friendRepository) Create(ctx context.Context, friend *models.Friend) error {
	err := r.db.WithContext(ctx).Create(friend).Error
	if err == nil {
		cache.InvalidateFriends(ctx)
	}
	return err
}

func (r *friendRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Friend{}).Count(&n).Error
	return n, err
}
