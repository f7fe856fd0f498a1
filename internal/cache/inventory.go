package cache

import (
	"context"
	"time"
)

const (
	PostcardsListKey    = "postcards:list"
	CustomPointsListKey = "custom_points:list"
	FriendsListKey      = "friends:list"
)

const (
	PostcardsListTTL    = 30 * time.Second
	CustomPointsListTTL = 5 * time.Minute
	FriendsListTTL      = 5 * time.Minute
)

func InvalidatePostcards(ctx context.Context) {
	Invalidate(ctx, PostcardsListKey)
}

func InvalidateCustomPoints(ctx context.Context) {
	Invalidate(ctx, CustomPointsListKey)
}

func InvalidateFriends(ctx context.Context) {
	Invalidate(ctx, FriendsListKey)
}
