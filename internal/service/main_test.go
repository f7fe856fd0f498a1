package service

import (
	"context"
	"fmt"
	"sync"

	"studyglobe/internal/models"
	"studyglobe/internal/storage"
)

// blobStub records saved and removed references.
type blobStub struct {
	mu      sync.Mutex
	saveErr error
	saved   []string
	removed []string
}

func (b *blobStub) Save(_ context.Context, folder storage.Folder, up storage.Upload) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return "", b.saveErr
	}
	ref := fmt.Sprintf("/uploads/%s/%d-%s", folder, len(b.saved), up.Filename)
	b.saved = append(b.saved, ref)
	return ref, nil
}

func (b *blobStub) Remove(_ context.Context, ref string) {
	if ref == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removed = append(b.removed, ref)
}

func (b *blobStub) MaxBytes() int64 {
	return 5 << 20
}

// postcardRepoStub is a stub for repository.PostcardRepository.
type postcardRepoStub struct {
	listFn    func(context.Context) ([]models.Postcard, error)
	getByIDFn func(context.Context, uint) (*models.Postcard, error)
	createFn  func(context.Context, *models.Postcard) error
	deleteFn  func(context.Context, uint) error
	likeFn    func(context.Context, uint) (int, error)
}

func (s *postcardRepoStub) List(ctx context.Context) ([]models.Postcard, error) {
	return s.listFn(ctx)
}
func (s *postcardRepoStub) GetByID(ctx context.Context, id uint) (*models.Postcard, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postcardRepoStub) Create(ctx context.Context, p *models.Postcard) error {
	return s.createFn(ctx, p)
}
func (s *postcardRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postcardRepoStub) Like(ctx context.Context, id uint) (int, error) {
	return s.likeFn(ctx, id)
}

// customPointRepoStub is an in-memory repository.CustomPointRepository.
type customPointRepoStub struct {
	points    map[uint]*models.CustomPoint
	nextID    uint
	updateErr error
}

func newCustomPointRepoStub() *customPointRepoStub {
	return &customPointRepoStub{points: map[uint]*models.CustomPoint{}, nextID: 1}
}

func (s *customPointRepoStub) List(context.Context) ([]models.CustomPoint, error) {
	out := []models.CustomPoint{}
	for _, p := range s.points {
		out = append(out, *p)
	}
	return out, nil
}
func (s *customPointRepoStub) GetByID(_ context.Context, id uint) (*models.CustomPoint, error) {
	p, ok := s.points[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *p
	return &cp, nil
}
func (s *customPointRepoStub) Create(_ context.Context, p *models.CustomPoint) error {
	p.ID = s.nextID
	s.nextID++
	cp := *p
	s.points[p.ID] = &cp
	return nil
}
func (s *customPointRepoStub) Update(_ context.Context, p *models.CustomPoint) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	cp := *p
	s.points[p.ID] = &cp
	return nil
}
func (s *customPointRepoStub) Delete(_ context.Context, id uint) error {
	if _, ok := s.points[id]; !ok {
		return errRecordNotFound
	}
	delete(s.points, id)
	return nil
}

// friendRepoStub is an in-memory repository.FriendRepository.
type friendRepoStub struct {
	friends []models.Friend
}

func (s *friendRepoStub) List(context.Context) ([]models.Friend, error) {
	return append([]models.Friend{}, s.friends...), nil
}
func (s *friendRepoStub) Create(_ context.Context, f *models.Friend) error {
	f.ID = uint(len(s.friends) + 1)
	s.friends = append(s.friends, *f)
	return nil
}
func (s *friendRepoStub) Count(context.Context) (int64, error) {
	return int64(len(s.friends)), nil
}

func assertAppError(err error, code string) (*models.AppError, bool) {
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Code != code {
		return nil, false
	}
	return appErr, true
}
