// Package board assembles the postcard cork board: it loads postcards, lays
// them out for the current viewport and owns each card's interaction state.
package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"studyglobe/internal/card"
	"studyglobe/internal/layout"
	"studyglobe/internal/models"
	"studyglobe/internal/stamp"
	"studyglobe/internal/toast"

	"golang.org/x/sync/singleflight"
)

const (
	EmptyMessage     = "No postcards yet. Create the first one!"
	LoadErrorMessage = "Failed to load postcards"
	LayoutMessage    = "The board cannot be laid out at this size"

	// DefaultLoadTimeout bounds a shared load once its callers stop waiting.
	DefaultLoadTimeout = 10 * time.Second
)

// ErrUnknownCard is returned for interactions with an id not on the board.
var ErrUnknownCard = errors.New("postcard is not on the board")

// Gateway is the data source of the board.
type Gateway interface {
	FetchPostcards(ctx context.Context) ([]models.Postcard, error)
	LikePostcard(ctx context.Context, id uint) (int, error)
}

// Status is the load state of the board.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// PositionedCard is one card ready to render.
type PositionedCard struct {
	Postcard  models.Postcard `json:"postcard"`
	ImageURL  string          `json:"image_url"`
	AvatarURL string          `json:"avatar_url,omitempty"`
	Slot      layout.Slot     `json:"slot"`
	Left      string          `json:"left"`
	Top       string          `json:"top"`
	State     card.State      `json:"state"`
	Transform string          `json:"transform"`
	Stamp     stamp.Theme     `json:"stamp"`
	Postmark  string          `json:"postmark"`
}

// View is a render snapshot of the board.
type View struct {
	Status       Status           `json:"status"`
	Message      string           `json:"message,omitempty"`
	CanRetry     bool             `json:"can_retry"`
	Breakpoint   string           `json:"breakpoint"`
	Viewport     layout.Viewport  `json:"viewport"`
	CanvasHeight int              `json:"canvas_height"`
	Cards        []PositionedCard `json:"cards"`
}

// Board is safe for concurrent use.
type Board struct {
	gw        Gateway
	viewport  *Viewport
	notifier  toast.Notifier
	resolve   func(string) string
	newJitter func() layout.Jitter
	now       func() time.Time
	timeout   time.Duration
	loads     singleflight.Group
	// loadJoined runs once a caller is attached to the in-flight load.
	loadJoined func()

	mu          sync.Mutex
	status      Status
	loadErr     error
	postcards   []models.Postcard
	cards       map[uint]*card.Card
	slots       []layout.Slot
	layoutErr   error
	size        layout.Viewport
	unsubscribe func()
}

// Option configures a Board.
type Option func(*Board)

// WithNotifier sets the toast sink for card failures.
func WithNotifier(n toast.Notifier) Option {
	return func(b *Board) { b.notifier = n }
}

// WithURLResolver turns stored image paths into fetchable URLs.
func WithURLResolver(fn func(string) string) Option {
	return func(b *Board) { b.resolve = fn }
}

// WithJitter sets the jitter factory called once per layout pass.
func WithJitter(fn func() layout.Jitter) Option {
	return func(b *Board) { b.newJitter = fn }
}

// WithClock sets the clock used for empty postmarks.
func WithClock(fn func() time.Time) Option {
	return func(b *Board) { b.now = fn }
}

// WithLoadTimeout bounds each fetch independently of the callers' contexts.
func WithLoadTimeout(d time.Duration) Option {
	return func(b *Board) { b.timeout = d }
}

// New returns an idle board reading from gw and sized by vp.
func New(gw Gateway, vp *Viewport, opts ...Option) *Board {
	b := &Board{
		gw:        gw,
		viewport:  vp,
		resolve:   func(s string) string { return s },
		newJitter: func() layout.Jitter { return layout.RandomJitter() },
		now:       time.Now,
		timeout:   DefaultLoadTimeout,
		status:    StatusIdle,
		cards:     make(map[uint]*card.Card),
		size:      vp.Size(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Mount starts following viewport changes and loads the postcards.
func (b *Board) Mount(ctx context.Context) error {
	b.mu.Lock()
	if b.unsubscribe == nil {
		b.unsubscribe = b.viewport.Subscribe(b.onResize)
	}
	b.size = b.viewport.Size()
	b.mu.Unlock()

	return b.Load(ctx)
}

// Unmount stops following viewport changes.
func (b *Board) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

func (b *Board) onResize(vp layout.Viewport) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.size = vp
	b.relayout()
}

// Load fetches the postcard list. Concurrent calls share one request, which
// runs detached from any single caller: a caller whose ctx ends gets ctx.Err()
// while the others still receive the shared result.
func (b *Board) Load(ctx context.Context) error {
	ch := b.loads.DoChan("postcards", func() (any, error) {
		b.mu.Lock()
		b.status = StatusLoading
		b.mu.Unlock()

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
		defer cancel()
		list, err := b.gw.FetchPostcards(fetchCtx)
		b.apply(list, err)
		return nil, err
	})
	if b.loadJoined != nil {
		b.loadJoined()
	}

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Retry reloads after a failed load.
func (b *Board) Retry(ctx context.Context) error {
	return b.Load(ctx)
}

func (b *Board) apply(list []models.Postcard, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.status = StatusError
		b.loadErr = err
		b.postcards = nil
		b.slots = nil
		return
	}

	b.loadErr = nil
	b.postcards = list
	next := make(map[uint]*card.Card, len(list))
	for _, p := range list {
		if c, ok := b.cards[p.ID]; ok {
			c.SyncLikes(p.Likes)
			next[p.ID] = c
			continue
		}
		next[p.ID] = card.New(p.ID, p.Likes, b.gw,
			card.WithNotifier(b.notifier),
			card.WithLikesCallback(b.onLikes),
		)
	}
	b.cards = next

	if len(list) == 0 {
		b.status = StatusEmpty
	} else {
		b.status = StatusReady
	}
	b.relayout()
}

// relayout recomputes every slot. Callers hold b.mu.
func (b *Board) relayout() {
	slots, err := layout.NewEngine(b.newJitter()).Layout(len(b.postcards), b.size)
	b.layoutErr = err
	if err != nil {
		b.slots = nil
		return
	}
	b.slots = slots
	for i, p := range b.postcards {
		b.cards[p.ID].SetRotation(slots[i].Rotation)
	}
}

// onLikes stores the server's count in the owned list and recomputes the slots.
func (b *Board) onLikes(id uint, likes int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.postcards {
		if b.postcards[i].ID == id {
			b.postcards[i].Likes = likes
			b.relayout()
			return
		}
	}
}

// Status returns the load state and the last load error.
func (b *Board) Status() (Status, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status, b.loadErr
}

// Postcards returns a copy of the owned list.
func (b *Board) Postcards() []models.Postcard {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Postcard(nil), b.postcards...)
}

// Card returns the interaction state of postcard id.
func (b *Board) Card(id uint) (*card.Card, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cards[id]
	return c, ok
}

// Like routes a like click to card id.
func (b *Board) Like(ctx context.Context, id uint) error {
	c, ok := b.Card(id)
	if !ok {
		return ErrUnknownCard
	}
	return c.LikeClick(ctx)
}

// Flip routes a click to card id.
func (b *Board) Flip(id uint) (card.Face, error) {
	c, ok := b.Card(id)
	if !ok {
		return card.Front, ErrUnknownCard
	}
	return c.Click(), nil
}

// View renders the current state.
func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := View{
		Status:       b.status,
		Breakpoint:   layout.BreakpointFor(b.size.Width).String(),
		Viewport:     b.size,
		CanvasHeight: layout.CanvasHeight(len(b.postcards), b.size),
		Cards:        []PositionedCard{},
	}

	switch b.status {
	case StatusEmpty:
		v.Message = EmptyMessage
		return v
	case StatusError:
		v.Message = LoadErrorMessage
		v.CanRetry = true
		return v
	case StatusReady:
	default:
		return v
	}

	if b.layoutErr != nil {
		v.Message = LayoutMessage
		return v
	}
	if len(b.slots) != len(b.postcards) {
		return v
	}
	now := b.now()
	for i, p := range b.postcards {
		c := b.cards[p.ID]
		slot := b.slots[i]
		v.Cards = append(v.Cards, PositionedCard{
			Postcard:  p,
			ImageURL:  b.resolve(p.ImageURL),
			AvatarURL: b.resolve(p.UserAvatar),
			Slot:      slot,
			Left:      slot.LeftCSS(),
			Top:       slot.TopCSS(),
			State:     c.Snapshot(),
			Transform: c.Transform(),
			Stamp:     stamp.Lookup(p.Country),
			Postmark:  stamp.FormatPostmarkDate(p.DateStamp, now),
		})
	}
	return v
}
