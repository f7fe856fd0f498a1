// Package storage validates, optimizes and stores uploaded images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"studyglobe/internal/middleware"
	"studyglobe/internal/observability"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// Folder groups blobs by purpose.
type Folder string

const (
	FolderImages  Folder = "images"
	FolderAvatars Folder = "avatars"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrEmptyUpload     = errors.New("uploaded file is empty")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrNotAnImage      = errors.New("file is not a valid image")
)

// Upload is a file received from a client.
type Upload struct {
	Filename string
	Content  []byte
}

// BlobStore persists blobs under a key and returns the reference clients use to fetch them.
type BlobStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	// Delete removes the blob behind ref. References the store does not own are ignored.
	Delete(ctx context.Context, ref string) error
}

// Service applies upload rules in front of a BlobStore.
type Service struct {
	store    BlobStore
	maxBytes int64
}

// NewService returns an upload service rejecting files above maxBytes.
func NewService(store BlobStore, maxBytes int64) *Service {
	return &Service{store: store, maxBytes: maxBytes}
}

// MaxBytes is the upload size limit.
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// AllowedExtensions lists accepted file extensions in sorted order.
func AllowedExtensions() []string {
	out := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Validate checks extension, size and content of an upload.
func (s *Service) Validate(up Upload) (string, error) {
	if len(up.Content) == 0 {
		return "", ErrEmptyUpload
	}
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: allowed types: %s", ErrUnsupportedType, strings.Join(AllowedExtensions(), ", "))
	}
	if int64(len(up.Content)) > s.maxBytes {
		return "", fmt.Errorf("%w: maximum size: %dMB", ErrTooLarge, s.maxBytes>>20)
	}
	if !strings.HasPrefix(http.DetectContentType(up.Content), "image/") {
		return "", ErrNotAnImage
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(up.Content)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	return ext, nil
}

// Save validates and optimizes up, then stores it under folder with a random name.
func (s *Service) Save(ctx context.Context, folder Folder, up Upload) (string, error) {
	ext, err := s.Validate(up)
	if err != nil {
		return "", err
	}

	content := up.Content
	contentType := http.DetectContentType(content)
	if optimized, ok := optimize(content, ext); ok {
		content = optimized
		ext = ".jpg"
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
	ref, err := s.store.Put(ctx, key, content, contentType)
	if err != nil {
		return "", fmt.Errorf("store %s: %w", key, err)
	}
	observability.UploadBytes.WithLabelValues(string(folder)).Observe(float64(len(content)))
	return ref, nil
}

// Remove deletes ref, logging failures. Empty refs are ignored.
func (s *Service) Remove(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.store.Delete(ctx, ref); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to delete blob", "ref", ref, "error", err)
	}
}
