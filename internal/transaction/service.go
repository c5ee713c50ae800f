package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	// LoadTransactions returns nil, nil when nothing has been persisted yet.
	LoadTransactions(ctx context.Context) ([]Transaction, error)
	SaveTransactions(ctx context.Context, txs []Transaction) error
	DeleteTransactions(ctx context.Context) error
}

// Service is the transaction store: an ordered in-memory collection that is
// written through to the repository after every mutation.
type Service struct {
	repo Repository

	// writeMu serializes mutations together with their notifications, so
	// observers see snapshots in the order the changes were made.
	writeMu sync.Mutex

	mu        sync.Mutex
	txs       []Transaction
	observers []func([]Transaction)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Subscribe registers fn to receive a snapshot after every change, including
// Load. Snapshots arrive in mutation order; fn must not mutate the store.
func (s *Service) Subscribe(fn func([]Transaction)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = append(s.observers, fn)
}

// Load replaces the in-memory collection with the persisted one. Missing or
// unreadable data leaves an empty collection; the failure is logged only.
func (s *Service) Load(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.load(ctx)
}

func (s *Service) load(ctx context.Context) {
	txs, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			slog.Warn("failed to parse stored transactions, starting empty", "error", err)
		} else {
			slog.Warn("failed to read stored transactions, starting empty", "error", err)
		}

		txs = nil
	}

	s.mu.Lock()
	s.txs = txs
	snapshot := slices.Clone(s.txs)
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx, err := New(params)
	if err != nil {
		return nil, err
	}

	if err := s.Add(ctx, *tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Add appends tx in entry order and persists the collection.
func (s *Service) Add(ctx context.Context, tx Transaction) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()

	next := append(slices.Clone(s.txs), tx)
	if err := s.repo.SaveTransactions(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("saving transactions: %w", err)
	}

	s.txs = next
	snapshot := slices.Clone(next)
	s.mu.Unlock()

	s.notify(snapshot)

	return nil
}

// Delete removes the transaction with the given id. An unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()

	idx := slices.IndexFunc(s.txs, func(t Transaction) bool { return t.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	next := slices.Delete(slices.Clone(s.txs), idx, idx+1)
	if err := s.repo.SaveTransactions(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("saving transactions: %w", err)
	}

	s.txs = next
	snapshot := slices.Clone(next)
	s.mu.Unlock()

	s.notify(snapshot)

	return nil
}

// Clear empties the collection and persists the empty list.
func (s *Service) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()

	if err := s.repo.SaveTransactions(ctx, []Transaction{}); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clearing transactions: %w", err)
	}

	s.txs = nil
	s.mu.Unlock()

	s.notify(nil)

	return nil
}

// Purge removes the persisted slot altogether and reloads from storage.
func (s *Service) Purge(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.DeleteTransactions(ctx); err != nil {
		return fmt.Errorf("purging transactions: %w", err)
	}

	s.load(ctx)

	return nil
}

// All returns a copy of the collection in entry order, not date order.
func (s *Service) All() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.txs)
}

func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.txs)
}

func (s *Service) Get(id uuid.UUID) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.txs {
		if t.ID == id {
			return &t, nil
		}
	}

	return nil, ErrNotFound
}

func (s *Service) notify(snapshot []Transaction) {
	s.mu.Lock()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}
