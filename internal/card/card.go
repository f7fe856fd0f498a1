// Package card holds the interaction state of a single postcard on the board.
package card

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"studyglobe/internal/toast"
)

const (
	// TiltDivisor converts pointer offset in pixels to tilt degrees.
	TiltDivisor = 15

	HoverZIndex = 50
	RestZIndex  = 10

	hoverLift  = 20
	hoverScale = 1.05

	LikeFailedTitle = "Failed to like postcard"
)

// ErrLikePending is returned when a like click arrives while a like request is in flight.
var ErrLikePending = errors.New("like already in flight")

// Face is the visible side of the card.
type Face int

const (
	Front Face = iota
	Back
)

func (f Face) String() string {
	if f == Back {
		return "back"
	}
	return "front"
}

// Tilt is the card's 3D tilt in degrees.
type Tilt struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point is a pointer position in page pixels.
type Point struct {
	X float64
	Y float64
}

// Rect is the card's bounding box in page pixels.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Center is the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Liker records a like and returns the authoritative like count.
type Liker interface {
	LikePostcard(ctx context.Context, id uint) (int, error)
}

// State is a snapshot of the card's view state.
type State struct {
	Hovered bool `json:"hovered"`
	Tilt    Tilt `json:"tilt"`
	Flipped bool `json:"flipped"`
	Liked   bool `json:"liked"`
	Likes   int  `json:"likes"`
	ZIndex  int  `json:"z_index"`
}

// Card is the interaction state machine of one postcard. It is safe for
// concurrent use; the like request runs without holding the lock.
type Card struct {
	mu        sync.Mutex
	id        uint
	baseLikes int
	rotation  float64
	hovered   bool
	tilt      Tilt
	flipped   bool
	liked     bool
	pending   bool

	liker    Liker
	notifier toast.Notifier
	onLikes  func(id uint, likes int)
}

// Option configures a Card.
type Option func(*Card)

// WithNotifier sets where like failures are reported.
func WithNotifier(n toast.Notifier) Option {
	return func(c *Card) { c.notifier = n }
}

// WithLikesCallback is called with the server's count after a successful like.
func WithLikesCallback(fn func(id uint, likes int)) Option {
	return func(c *Card) { c.onLikes = fn }
}

// New returns a card at rest showing its front face.
func New(id uint, likes int, liker Liker, opts ...Option) *Card {
	c := &Card{id: id, baseLikes: likes, liker: liker}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Card) ID() uint {
	return c.id
}

// SetRotation stores the resting rotation from the card's layout slot.
func (c *Card) SetRotation(deg float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = deg
}

// SyncLikes adopts a fresh server count, keeping a local like counted once.
func (c *Card) SyncLikes(likes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.liked || c.pending {
		c.baseLikes = max(likes-1, 0)
		return
	}
	c.baseLikes = likes
}

func (c *Card) PointerEnter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hovered = true
}

// PointerLeave drops the hover state and flattens the tilt.
func (c *Card) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hovered = false
	c.tilt = Tilt{}
}

// PointerMove tilts the card toward the pointer. Ignored unless hovered.
func (c *Card) PointerMove(p Point, bounds Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hovered {
		return
	}
	center := bounds.Center()
	dx := p.X - center.X
	dy := p.Y - center.Y
	c.tilt = Tilt{X: dy / TiltDivisor, Y: -dx / TiltDivisor}
}

// Click flips the card.
func (c *Card) Click() Face {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flipped = !c.flipped
	return c.face()
}

func (c *Card) face() Face {
	if c.flipped {
		return Back
	}
	return Front
}

// Face returns the visible side.
func (c *Card) Face() Face {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.face()
}

// LikeClick toggles the like. Liking is optimistic and sends exactly one
// request; a failure reports a toast and reverts the toggle. Unliking only
// changes the local count.
func (c *Card) LikeClick(ctx context.Context) error {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return ErrLikePending
	}
	if c.liked {
		c.liked = false
		c.mu.Unlock()
		return nil
	}
	c.liked = true
	c.pending = true
	c.mu.Unlock()

	likes, err := c.liker.LikePostcard(ctx, c.id)

	c.mu.Lock()
	c.pending = false
	if err != nil {
		c.liked = false
		c.mu.Unlock()
		if c.notifier != nil {
			c.notifier.Notify(ctx, toast.Toast{
				Title:       LikeFailedTitle,
				Description: err.Error(),
				Variant:     toast.Destructive,
			})
		}
		return fmt.Errorf("like postcard %d: %w", c.id, err)
	}
	c.baseLikes = max(likes-1, 0)
	c.mu.Unlock()

	if c.onLikes != nil {
		c.onLikes(c.id, likes)
	}
	return nil
}

// Snapshot returns the current view state.
func (c *Card) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Hovered: c.hovered,
		Tilt:    c.tilt,
		Flipped: c.flipped,
		Liked:   c.liked,
		Likes:   c.displayedLikes(),
		ZIndex:  c.zIndex(),
	}
}

func (c *Card) displayedLikes() int {
	if c.liked {
		return c.baseLikes + 1
	}
	return c.baseLikes
}

// DisplayedLikes is the count the card shows, including an optimistic like.
func (c *Card) DisplayedLikes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayedLikes()
}

func (c *Card) zIndex() int {
	if c.hovered {
		return HoverZIndex
	}
	return RestZIndex
}

// ZIndex lifts the hovered card above its neighbours.
func (c *Card) ZIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zIndex()
}

// Transform renders the card's CSS transform.
func (c *Card) Transform() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	lift, scale := 0.0, 1.0
	if c.hovered {
		lift, scale = hoverLift, hoverScale
	}
	return "rotate(" + num(c.rotation) + "deg) perspective(1000px)" +
		" rotateX(" + num(c.tilt.X) + "deg) rotateY(" + num(c.tilt.Y) + "deg)" +
		" translateZ(" + num(lift) + "px) scale(" + num(scale) + ")"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
