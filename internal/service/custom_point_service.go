package service

import (
	"context"
	"strings"

	"studyglobe/internal/models"
	"studyglobe/internal/repository"
	"studyglobe/internal/storage"
)

type CreateCustomPointInput struct {
	Name        string          `json:"name" validate:"notblank,max=100"`
	Description string          `json:"description"`
	Lat         float64         `json:"lat" validate:"latitude"`
	Lng         float64         `json:"lng" validate:"longitude"`
	Image       *storage.Upload `json:"image"`
}

// UpdateCustomPointInput is a partial update; nil fields are left unchanged.
type UpdateCustomPointInput struct {
	Name        *string         `json:"name" validate:"omitempty,notblank,max=100"`
	Description *string         `json:"description"`
	Lat         *float64        `json:"lat" validate:"omitempty,latitude"`
	Lng         *float64        `json:"lng" validate:"omitempty,longitude"`
	Image       *storage.Upload `json:"image"`
}

type CustomPointService struct {
	repo  repository.CustomPointRepository
	blobs Blobs
}

func NewCustomPointService(repo repository.CustomPointRepository, blobs Blobs) *CustomPointService {
	return &CustomPointService{repo: repo, blobs: blobs}
}

func (s *CustomPointService) List(ctx context.Context) ([]models.CustomPoint, error) {
	return s.repo.List(ctx)
}

func (s *CustomPointService) Create(ctx context.Context, in CreateCustomPointInput) (*models.CustomPoint, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	imageURL, err := saveUpload(ctx, s.blobs, storage.FolderImages, in.Image)
	if err != nil {
		return nil, err
	}

	point := &models.CustomPoint{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Lat:         in.Lat,
		Lng:         in.Lng,
		ImageURL:    imageURL,
	}
	if err := s.repo.Create(ctx, point); err != nil {
		s.blobs.Remove(ctx, imageURL)
		return nil, err
	}
	return point, nil
}

// Update applies the set fields. A new image replaces the old blob, which is
// deleted once the row is saved.
func (s *CustomPointService) Update(ctx context.Context, id uint, in UpdateCustomPointInput) (*models.CustomPoint, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	point, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Custom point", id)
	}

	if in.Name != nil {
		point.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		point.Description = *in.Description
	}
	if in.Lat != nil {
		point.Lat = *in.Lat
	}
	if in.Lng != nil {
		point.Lng = *in.Lng
	}

	oldImage := ""
	if in.Image != nil {
		ref, err := saveUpload(ctx, s.blobs, storage.FolderImages, in.Image)
		if err != nil {
			return nil, err
		}
		oldImage, point.ImageURL = point.ImageURL, ref
	}

	if err := s.repo.Update(ctx, point); err != nil {
		if in.Image != nil {
			s.blobs.Remove(ctx, point.ImageURL)
		}
		return nil, err
	}
	s.blobs.Remove(ctx, oldImage)
	return point, nil
}

// Delete removes the point and its image blob.
func (s *CustomPointService) Delete(ctx context.Context, id uint) error {
	point, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Custom point", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "Custom point", id)
	}
	s.blobs.Remove(ctx, point.ImageURL)
	return nil
}
