package service

import (
	"context"
	"strings"

	"studyglobe/internal/middleware"
	"studyglobe/internal/models"
	"studyglobe/internal/repository"
	"studyglobe/internal/storage"

	"github.com/sahilm/fuzzy"
)

type CreateFriendInput struct {
	Name    string          `json:"name" validate:"notblank,max=100"`
	Status  string          `json:"status" validate:"max=200"`
	Country string          `json:"country" validate:"max=100"`
	City    string          `json:"city" validate:"max=100"`
	Lat     float64         `json:"lat" validate:"latitude"`
	Lng     float64         `json:"lng" validate:"longitude"`
	Avatar  *storage.Upload `json:"avatar"`
}

// FriendService manages the friends shown on the globe.
type FriendService struct {
	repo  repository.FriendRepository
	blobs Blobs
}

func NewFriendService(repo repository.FriendRepository, blobs Blobs) *FriendService {
	return &FriendService{repo: repo, blobs: blobs}
}

func (s *FriendService) List(ctx context.Context) ([]models.Friend, error) {
	return s.repo.List(ctx)
}

func (s *FriendService) Create(ctx context.Context, in CreateFriendInput) (*models.Friend, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	avatarURL, err := saveUpload(ctx, s.blobs, storage.FolderAvatars, in.Avatar)
	if err != nil {
		return nil, err
	}

	friend := &models.Friend{
		Name:      strings.TrimSpace(in.Name),
		Status:    in.Status,
		AvatarURL: avatarURL,
		Country:   in.Country,
		City:      in.City,
		Lat:       in.Lat,
		Lng:       in.Lng,
	}
	if err := s.repo.Create(ctx, friend); err != nil {
		s.blobs.Remove(ctx, avatarURL)
		return nil, err
	}
	return friend, nil
}

// friendSource exposes "name city country" strings to the fuzzy matcher.
type friendSource []models.Friend

func (f friendSource) String(i int) string {
	return strings.ToLower(f[i].Name + " " + f[i].City + " " + f[i].Country)
}

func (f friendSource) Len() int {
	return len(f)
}

// Search ranks friends by fuzzy match of query against name, city and country.
func (s *FriendService) Search(ctx context.Context, query string) ([]models.Friend, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}

	friends, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(query, friendSource(friends))
	out := make([]models.Friend, 0, len(matches))
	for _, m := range matches {
		out = append(out, friends[m.Index])
	}
	return out, nil
}

// EnsureSamples inserts samples when no friend exists yet and reports how many were added.
func (s *FriendService) EnsureSamples(ctx context.Context, samples []models.Friend) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for i := range samples {
		f := samples[i]
		if err := s.repo.Create(ctx, &f); err != nil {
			return i, err
		}
	}
	middleware.Logger.InfoContext(ctx, "seeded sample friends", "count", len(samples))
	return len(samples), nil
}
