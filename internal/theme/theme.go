// Package theme persists the light/dark display preference.
package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MrJamesThe3rd/zentracker/internal/kv"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

var ErrUnknown = errors.New("unknown theme")

func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
}

func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}

	return Dark
}

type Store struct {
	slots kv.Store

	mu      sync.Mutex
	current Theme
}

func NewStore(slots kv.Store) *Store {
	return &Store{slots: slots, current: Light}
}

// Load reads the persisted theme; anything other than a valid value means Light.
func (s *Store) Load(ctx context.Context) {
	current := Light

	raw, err := s.slots.Get(ctx, kv.KeyTheme)
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		slog.Warn("failed to read stored theme, using light", "error", err)
	default:
		if t, err := Parse(string(raw)); err == nil {
			current = t
		} else {
			slog.Warn("ignoring stored theme", "error", err)
		}
	}

	s.mu.Lock()
	s.current = current
	s.mu.Unlock()
}

func (s *Store) Get() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

func (s *Store) Set(ctx context.Context, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setLocked(ctx, t)
}

// Toggle flips the theme and returns the new value.
func (s *Store) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Toggled()
	if err := s.setLocked(ctx, next); err != nil {
		return s.current, err
	}

	return next, nil
}

func (s *Store) setLocked(ctx context.Context, t Theme) error {
	if err := s.slots.Put(ctx, kv.KeyTheme, []byte(t)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}

	s.current = t

	return nil
}
