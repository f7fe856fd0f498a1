// Package toast carries transient user notifications.
package toast

import (
	"context"
	"log/slog"
	"sync"
)

// Variant is the visual severity of a toast.
type Variant string

const (
	Default     Variant = "default"
	Destructive Variant = "destructive"
)

// Toast is a short-lived notification.
type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

// Notifier delivers toasts to the user.
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// Recorder keeps toasts in memory until drained.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(_ context.Context, t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Drain returns and clears the pending toasts.
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	return out
}

// Pending returns a copy of the pending toasts.
func (r *Recorder) Pending() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// LogNotifier writes toasts to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, t Toast) {
	level := slog.LevelInfo
	if t.Variant == Destructive {
		level = slog.LevelWarn
	}
	n.Logger.Log(ctx, level, "toast", "title", t.Title, "description", t.Description)
}

// Fanout delivers each toast to every notifier.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, t Toast) {
	for _, n := range f {
		n.Notify(ctx, t)
	}
}
