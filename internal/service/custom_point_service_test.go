package service

import (
	"context"
	"errors"
	"testing"

	"studyglobe/internal/models"
	"studyglobe/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCustomPointService_PartialUpdate(t *testing.T) {
	repo := newCustomPointRepoStub()
	blobs := &blobStub{}
	svc := NewCustomPointService(repo, blobs)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomPointInput{
		Name: "Library", Description: "Quiet floor", Lat: 10, Lng: 20,
		Image: &storage.Upload{Filename: "lib.jpg", Content: []byte("x")},
	})
	require.NoError(t, err)
	oldImage := created.ImageURL

	updated, err := svc.Update(ctx, created.ID, UpdateCustomPointInput{Lat: ptr(11.5)})
	require.NoError(t, err)
	assert.Equal(t, "Library", updated.Name)
	assert.Equal(t, "Quiet floor", updated.Description)
	assert.Equal(t, 11.5, updated.Lat)
	assert.Equal(t, 20.0, updated.Lng)
	assert.Equal(t, oldImage, updated.ImageURL)
	assert.Empty(t, blobs.removed)

	updated, err = svc.Update(ctx, created.ID, UpdateCustomPointInput{
		Image: &storage.Upload{Filename: "new.jpg", Content: []byte("y")},
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldImage, updated.ImageURL)
	assert.Equal(t, []string{oldImage}, blobs.removed)
}

func TestCustomPointService_UpdateFailureKeepsOldImage(t *testing.T) {
	repo := newCustomPointRepoStub()
	blobs := &blobStub{}
	svc := NewCustomPointService(repo, blobs)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomPointInput{
		Name: "Cafe", Lat: 1, Lng: 2,
		Image: &storage.Upload{Filename: "cafe.jpg", Content: []byte("x")},
	})
	require.NoError(t, err)

	repo.updateErr = errors.New("locked")
	_, err = svc.Update(ctx, created.ID, UpdateCustomPointInput{
		Image: &storage.Upload{Filename: "new.jpg", Content: []byte("y")},
	})
	require.Error(t, err)
	require.Len(t, blobs.removed, 1)
	assert.NotEqual(t, created.ImageURL, blobs.removed[0])
}

func TestCustomPointService_NotFound(t *testing.T) {
	svc := NewCustomPointService(newCustomPointRepoStub(), &blobStub{})
	ctx := context.Background()

	_, err := svc.Update(ctx, 42, UpdateCustomPointInput{Name: ptr("x")})
	appErr, ok := assertAppError(err, models.CodeNotFound)
	require.True(t, ok)
	assert.Equal(t, "Custom point not found", appErr.Message)

	_, ok = assertAppError(svc.Delete(ctx, 42), models.CodeNotFound)
	assert.True(t, ok)
}

func TestCustomPointService_DeleteRemovesImage(t *testing.T) {
	repo := newCustomPointRepoStub()
	blobs := &blobStub{}
	svc := NewCustomPointService(repo, blobs)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomPointInput{
		Name: "Park", Lat: 1, Lng: 2,
		Image: &storage.Upload{Filename: "park.jpg", Content: []byte("x")},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, []string{created.ImageURL}, blobs.removed)
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCustomPointService_ValidatesPatch(t *testing.T) {
	svc := NewCustomPointService(newCustomPointRepoStub(), &blobStub{})

	_, err := svc.Update(context.Background(), 1, UpdateCustomPointInput{Lng: ptr(500.0)})
	_, ok := assertAppError(err, models.CodeValidation)
	assert.True(t, ok)
}
