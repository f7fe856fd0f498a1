package service

import (
	"context"
	"strings"
	"time"

	"studyglobe/internal/middleware"
	"studyglobe/internal/models"
	"studyglobe/internal/observability"
	"studyglobe/internal/repository"
	"studyglobe/internal/stamp"
	"studyglobe/internal/storage"
)

// CreatePostcardInput carries the fields of a new postcard.
type CreatePostcardInput struct {
	UserName        string          `json:"user_name" validate:"notblank,max=100"`
	Location        string          `json:"location" validate:"notblank,max=200"`
	Country         string          `json:"country" validate:"notblank,max=100"`
	Caption         string          `json:"caption" validate:"notblank"`
	PersonalMessage string          `json:"personal_message"`
	DateStamp       string          `json:"date_stamp" validate:"max=50"`
	Lat             float64         `json:"lat" validate:"latitude"`
	Lng             float64         `json:"lng" validate:"longitude"`
	Image           *storage.Upload `json:"image" validate:"required"`
	Avatar          *storage.Upload `json:"user_avatar"`
}

type PostcardService struct {
	repo  repository.PostcardRepository
	blobs Blobs
	now   func() time.Time
}

func NewPostcardService(repo repository.PostcardRepository, blobs Blobs) *PostcardService {
	return &PostcardService{repo: repo, blobs: blobs, now: time.Now}
}

// List returns every postcard, newest first.
func (s *PostcardService) List(ctx context.Context) ([]models.Postcard, error) {
	return s.repo.List(ctx)
}

func (s *PostcardService) Get(ctx context.Context, id uint) (*models.Postcard, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Postcard", id)
	}
	return p, nil
}

// Create stores the uploads and persists the postcard with zero likes and comments.
// Blobs already stored are removed again when a later step fails.
func (s *PostcardService) Create(ctx context.Context, in CreatePostcardInput) (_ *models.Postcard, err error) {
	ctx, span := observability.StartInternalSpan(ctx, "PostcardService", "Create")
	defer func() { observability.EndSpan(span, err) }()

	if err := validate(in); err != nil {
		return nil, err
	}

	imageURL, err := saveUpload(ctx, s.blobs, storage.FolderImages, in.Image)
	if err != nil {
		return nil, err
	}
	avatarURL, err := saveUpload(ctx, s.blobs, storage.FolderAvatars, in.Avatar)
	if err != nil {
		s.blobs.Remove(ctx, imageURL)
		return nil, err
	}

	dateStamp := strings.TrimSpace(in.DateStamp)
	if dateStamp == "" {
		dateStamp = stamp.DateStamp(s.now())
	}

	postcard := &models.Postcard{
		UserName:        strings.TrimSpace(in.UserName),
		UserAvatar:      avatarURL,
		Location:        strings.TrimSpace(in.Location),
		Country:         strings.TrimSpace(in.Country),
		ImageURL:        imageURL,
		Caption:         in.Caption,
		PersonalMessage: in.PersonalMessage,
		DateStamp:       dateStamp,
		Lat:             in.Lat,
		Lng:             in.Lng,
	}
	if err := s.repo.Create(ctx, postcard); err != nil {
		s.blobs.Remove(ctx, imageURL)
		s.blobs.Remove(ctx, avatarURL)
		return nil, err
	}

	observability.PostcardsCreated.Inc()
	middleware.Logger.InfoContext(ctx, "postcard created", "postcard_id", postcard.ID, "country", postcard.Country)
	return postcard, nil
}

// Like increments the like counter and returns the new total.
func (s *PostcardService) Like(ctx context.Context, id uint) (int, error) {
	likes, err := s.repo.Like(ctx, id)
	if err != nil {
		return 0, notFound(err, "Postcard", id)
	}
	observability.PostcardLikes.Inc()
	return likes, nil
}

// Delete removes the postcard and its image and avatar blobs.
func (s *PostcardService) Delete(ctx context.Context, id uint) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Postcard", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "Postcard", id)
	}
	s.blobs.Remove(ctx, p.ImageURL)
	s.blobs.Remove(ctx, p.UserAvatar)
	return nil
}
