// Package layout places postcards on a scattered, responsive cork board.
//
// Positions are a pure function of (index, count, viewport, jitter). The jitter
// strategy is injected so a fixed seed reproduces the same board exactly.
package layout

import (
	"errors"
	"math"
	"strconv"
)

// Breakpoint classifies a viewport width.
type Breakpoint int

const (
	Mobile Breakpoint = iota
	Tablet
	Desktop
)

const (
	tabletMinWidth  = 640
	desktopMinWidth = 1024

	// BaseOffset is the space above the first row.
	BaseOffset = 40
	// TrailingPadding is the space below the last row.
	TrailingPadding = 100
)

func (b Breakpoint) String() string {
	switch b {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

var (
	ErrInvalidViewport = errors.New("viewport width must be positive")
	ErrIndexOutOfRange = errors.New("card index out of range")
)

// Viewport is the visible area in CSS pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BreakpointFor classifies width.
func BreakpointFor(width int) Breakpoint {
	switch {
	case width < tabletMinWidth:
		return Mobile
	case width < desktopMinWidth:
		return Tablet
	default:
		return Desktop
	}
}

// Metrics are the grid parameters of one breakpoint.
type Metrics struct {
	Breakpoint     Breakpoint
	Columns        int
	CardWidth      int
	CardHeight     int
	Gutter         int
	VerticalGutter int
	JitterX        float64
	JitterY        float64
	MaxRotation    float64
}

// MetricsFor returns the grid parameters for vp.
func MetricsFor(vp Viewport) Metrics {
	switch bp := BreakpointFor(vp.Width); bp {
	case Mobile:
		return Metrics{
			Breakpoint:     bp,
			Columns:        1,
			CardWidth:      max(min(280, vp.Width-40), 1),
			CardHeight:     420,
			Gutter:         20,
			VerticalGutter: 40,
			JitterX:        4,
			JitterY:        10,
			MaxRotation:    1,
		}
	case Tablet:
		return Metrics{
			Breakpoint:     bp,
			Columns:        2,
			CardWidth:      300,
			CardHeight:     450,
			Gutter:         40,
			VerticalGutter: 60,
			JitterX:        6,
			JitterY:        15,
			MaxRotation:    2,
		}
	default:
		return Metrics{
			Breakpoint:     bp,
			Columns:        3,
			CardWidth:      320,
			CardHeight:     480,
			Gutter:         60,
			VerticalGutter: 80,
			JitterX:        8,
			JitterY:        20,
			MaxRotation:    3,
		}
	}
}

// RowPitch is the distance between the tops of consecutive rows.
func (m Metrics) RowPitch() int {
	return m.CardHeight + m.VerticalGutter
}

// Slot is the absolute placement of one card.
type Slot struct {
	Index    int     `json:"index"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Rotation float64 `json:"rotation"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// LeftCSS renders Left as a CSS pixel length.
func (s Slot) LeftCSS() string {
	return pixels(s.Left)
}

// TopCSS renders Top as a CSS pixel length.
func (s Slot) TopCSS() string {
	return pixels(s.Top)
}

func pixels(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64) + "px"
}

// Engine computes slots using its jitter strategy.
type Engine struct {
	jitter Jitter
}

// NewEngine returns an engine; a nil jitter means NoJitter.
func NewEngine(j Jitter) *Engine {
	if j == nil {
		j = NoJitter
	}
	return &Engine{jitter: j}
}

// ComputeSlot places card index of count within vp.
func (e *Engine) ComputeSlot(index, count int, vp Viewport) (Slot, error) {
	if vp.Width <= 0 {
		return Slot{}, ErrInvalidViewport
	}
	if index < 0 || index >= count {
		return Slot{}, ErrIndexOutOfRange
	}
	return e.slot(index, MetricsFor(vp), vp), nil
}

func (e *Engine) slot(index int, m Metrics, vp Viewport) Slot {
	col := index % m.Columns
	row := index / m.Columns

	var left float64
	if m.Columns == 1 {
		left = float64(vp.Width-m.CardWidth) / 2
	} else {
		share := float64(vp.Width-m.Gutter*(m.Columns+1)) / float64(m.Columns)
		left = float64(m.Gutter) + float64(col)*(share+float64(m.Gutter)) + math.Max(0, (share-float64(m.CardWidth))/2)
	}
	left += e.jitter.Offset(index, ChannelX) * m.JitterX

	top := float64(BaseOffset+row*m.RowPitch()) + e.jitter.Offset(index, ChannelY)*m.JitterY
	rotation := e.jitter.Offset(index, ChannelRotation) * m.MaxRotation

	return Slot{
		Index:    index,
		Row:      row,
		Col:      col,
		Left:     left,
		Top:      top,
		Rotation: rotation,
		Width:    m.CardWidth,
		Height:   m.CardHeight,
	}
}

// Layout computes every slot for count cards in one pass.
func (e *Engine) Layout(count int, vp Viewport) ([]Slot, error) {
	if vp.Width <= 0 {
		return nil, ErrInvalidViewport
	}
	m := MetricsFor(vp)
	slots := make([]Slot, count)
	for i := range slots {
		slots[i] = e.slot(i, m, vp)
	}
	return slots, nil
}

// Rows is the number of grid rows count cards occupy.
func Rows(count int, vp Viewport) int {
	if count <= 0 {
		return 0
	}
	cols := MetricsFor(vp).Columns
	return (count + cols - 1) / cols
}

// CanvasHeight is the board height that fits count cards plus padding.
func CanvasHeight(count int, vp Viewport) int {
	return BaseOffset + Rows(count, vp)*MetricsFor(vp).RowPitch() + TrailingPadding
}
