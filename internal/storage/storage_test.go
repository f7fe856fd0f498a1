package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestService_Validate(t *testing.T) {
	svc := NewService(nil, 5<<20)
	valid := pngBytes(t, 4, 4)

	tests := []struct {
		name    string
		upload  Upload
		wantErr error
	}{
		{"valid png", Upload{Filename: "photo.PNG", Content: valid}, nil},
		{"empty", Upload{Filename: "photo.png"}, ErrEmptyUpload},
		{"bad extension", Upload{Filename: "notes.txt", Content: valid}, ErrUnsupportedType},
		{"not an image", Upload{Filename: "photo.jpg", Content: []byte("plain text pretending")}, ErrNotAnImage},
		{"too large", Upload{Filename: "big.png", Content: append(valid, make([]byte, 5<<20)...)}, ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.upload)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_SaveLocalOptimizesAndRemoves(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc := NewService(store, 5<<20)
	ctx := context.Background()

	ref, err := svc.Save(ctx, FolderImages, Upload{Filename: "wide.png", Content: pngBytes(t, 1600, 600)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/images/"))
	assert.Equal(t, ".jpg", filepath.Ext(ref))

	path := filepath.Join(store.Root(), strings.TrimPrefix(ref, "/uploads/"))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 300, cfg.Height)

	svc.Remove(ctx, ref)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_DeleteIgnoresForeignAndMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, store.Delete(ctx, "https://images.unsplash.com/photo.jpg"))
	assert.NoError(t, store.Delete(ctx, "/uploads/images/missing.jpg"))
	assert.Error(t, store.Delete(ctx, "/uploads/../../etc/passwd"))
}

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(in.Body)
	f.objects[*in.Key] = buf.Bytes()
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_PutDelete(t *testing.T) {
	fake := &fakeObjects{objects: map[string][]byte{}}
	store := newS3Store(fake, "cards", "https://cdn.test/")
	svc := NewService(store, 5<<20)
	ctx := context.Background()

	ref, err := svc.Save(ctx, FolderAvatars, Upload{Filename: "me.png", Content: pngBytes(t, 10, 10)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "https://cdn.test/avatars/"))
	require.Len(t, fake.objects, 1)

	require.NoError(t, store.Delete(ctx, "/uploads/images/local.jpg"))
	assert.Len(t, fake.objects, 1)

	svc.Remove(ctx, ref)
	assert.Empty(t, fake.objects)
}
