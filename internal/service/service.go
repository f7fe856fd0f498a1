// Package service holds the business logic behind the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studyglobe/internal/models"
	"studyglobe/internal/storage"
	"studyglobe/internal/validation"

	"gorm.io/gorm"
)

// Blobs stores and removes uploaded images.
type Blobs interface {
	Save(ctx context.Context, folder storage.Folder, up storage.Upload) (string, error)
	Remove(ctx context.Context, ref string)
	MaxBytes() int64
}

func validate(in interface{}) error {
	err := validation.ValidateStruct(in)
	if err == nil {
		return nil
	}
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		return models.NewValidationError(verr.Fields[0].Message)
	}
	return models.NewValidationError(err.Error())
}

// saveUpload stores up and translates upload rule violations into validation errors.
func saveUpload(ctx context.Context, blobs Blobs, folder storage.Folder, up *storage.Upload) (string, error) {
	if up == nil {
		return "", nil
	}
	ref, err := blobs.Save(ctx, folder, *up)
	switch {
	case err == nil:
		return ref, nil
	case errors.Is(err, storage.ErrUnsupportedType):
		return "", models.NewValidationError("Invalid file type. Allowed types: " + strings.Join(storage.AllowedExtensions(), ", "))
	case errors.Is(err, storage.ErrTooLarge):
		return "", models.NewValidationError(fmt.Sprintf("File too large. Maximum size: %dMB", blobs.MaxBytes()>>20))
	case errors.Is(err, storage.ErrEmptyUpload):
		return "", models.NewValidationError("Uploaded file is empty")
	case errors.Is(err, storage.ErrNotAnImage):
		return "", models.NewValidationError("Uploaded file is not a valid image")
	default:
		return "", models.NewInternalError(err)
	}
}

// notFound maps a missing row to the API's not found error.
func notFound(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}
