// Package profile keeps the single user's profile record.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MrJamesThe3rd/zentracker/internal/kv"
)

// Profile fields are all optional free text.
type Profile struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Age    string `json:"age"`
	City   string `json:"city"`
	State  string `json:"state"`
	Phone  string `json:"phone"`
}

type Store struct {
	slots kv.Store

	mu      sync.Mutex
	profile Profile
}

func NewStore(slots kv.Store) *Store {
	return &Store{slots: slots}
}

// Load reads the persisted profile. Absent or unreadable data leaves the
// empty profile in place.
func (s *Store) Load(ctx context.Context) {
	var p Profile

	raw, err := s.slots.Get(ctx, kv.KeyProfile)
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		slog.Warn("failed to read stored profile, using defaults", "error", err)
	default:
		if err := json.Unmarshal(raw, &p); err != nil {
			slog.Warn("failed to parse stored profile, using defaults", "error", err)
			p = Profile{}
		}
	}

	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

func (s *Store) Get() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.profile
}

// Save replaces the whole profile with p.
func (s *Store) Save(ctx context.Context, p Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slots.Put(ctx, kv.KeyProfile, raw); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	s.profile = p

	return nil
}
