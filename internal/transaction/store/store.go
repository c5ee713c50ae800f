package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/zentracker/internal/kv"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

// Store serializes the whole transaction collection into a single slot.
type Store struct {
	slots kv.Store
	key   string
}

func New(slots kv.Store) *Store {
	return &Store{slots: slots, key: kv.KeyTransactions}
}

func (s *Store) LoadTransactions(ctx context.Context) ([]transaction.Transaction, error) {
	raw, err := s.slots.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	var txs []transaction.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		return nil, fmt.Errorf("%w: %w", transaction.ErrMalformed, err)
	}

	if err := validate(txs); err != nil {
		return nil, fmt.Errorf("%w: %w", transaction.ErrMalformed, err)
	}

	return txs, nil
}

func (s *Store) SaveTransactions(ctx context.Context, txs []transaction.Transaction) error {
	if txs == nil {
		txs = []transaction.Transaction{}
	}

	raw, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}

	if err := s.slots.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransactions(ctx context.Context) error {
	if err := s.slots.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("deleting transactions: %w", err)
	}

	return nil
}

// validate rejects the whole payload when one record breaks an invariant or
// an id repeats.
func validate(txs []transaction.Transaction) error {
	seen := make(map[uuid.UUID]struct{}, len(txs))

	for i, t := range txs {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}

		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("record %d: duplicate id %s", i, t.ID)
		}

		seen[t.ID] = struct{}{}
	}

	return nil
}
