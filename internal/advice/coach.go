package advice

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

type State int

const (
	StateNotRequested State = iota
	StateInFlight
	StateSatisfied
)

func (s State) String() string {
	switch s {
	case StateNotRequested:
		return "not_requested"
	case StateInFlight:
		return "in_flight"
	case StateSatisfied:
		return "satisfied"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Snapshot struct {
	State    State     `json:"state"`
	Insights []Insight `json:"insights"`
}

// Coach owns the advice shown next to the dashboard. It fetches automatically
// once enough data exists, allows manual refreshes and never runs two
// requests at the same time.
type Coach struct {
	svc *Service

	mu       sync.Mutex
	state    State
	insights []Insight
	gen      uint64
	cancel   context.CancelFunc
	done     chan struct{}
	closed   bool
	onUpdate []func(Snapshot)

	wg sync.WaitGroup
}

func NewCoach(svc *Service) *Coach {
	return &Coach{svc: svc}
}

// OnUpdate registers fn to receive a snapshot on every state change. fn is
// called from the fetching goroutine.
func (c *Coach) OnUpdate(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onUpdate = append(c.onUpdate, fn)
}

func (c *Coach) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Observe reacts to a new store snapshot. The first time at least
// MinTransactions are present a fetch starts; falling below the threshold
// drops any advice and re-arms the automatic fetch.
func (c *Coach) Observe(txs []transaction.Transaction) {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return
	}

	if len(txs) < MinTransactions {
		if c.state == StateNotRequested && c.insights == nil {
			c.mu.Unlock()
			return
		}

		c.abortLocked()
		c.state = StateNotRequested
		c.insights = nil
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.publish(snap)

		return
	}

	if c.state != StateNotRequested {
		c.mu.Unlock()
		return
	}

	c.startLocked(txs)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
}

// Refresh starts a manual fetch. It fails with ErrInFlight while a request
// is running and with ErrNotEnoughData below MinTransactions.
func (c *Coach) Refresh(txs []transaction.Transaction) error {
	if len(txs) < MinTransactions {
		return ErrNotEnoughData
	}

	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return context.Canceled
	}

	if c.state == StateInFlight {
		c.mu.Unlock()
		return ErrInFlight
	}

	c.startLocked(txs)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)

	return nil
}

// Wait blocks until the current fetch, if any, has finished.
func (c *Coach) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any running fetch and discards its result.
func (c *Coach) Close() {
	c.mu.Lock()
	c.closed = true
	c.abortLocked()
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Coach) startLocked(txs []transaction.Transaction) {
	c.gen++
	gen := c.gen

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.cancel = cancel
	c.done = done
	c.state = StateInFlight

	sample := slices.Clone(txs)

	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		defer close(done)
		defer cancel()

		insights, err := c.svc.Request(ctx, sample)

		c.mu.Lock()
		if gen != c.gen || c.closed {
			c.mu.Unlock()
			return
		}

		c.cancel = nil

		if errors.Is(err, ErrNotEnoughData) {
			c.state = StateNotRequested
		} else {
			c.insights = insights
			c.state = StateSatisfied
		}

		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.publish(snap)
	}()
}

func (c *Coach) abortLocked() {
	c.gen++

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if c.state == StateInFlight {
		c.state = StateNotRequested
	}
}

func (c *Coach) snapshotLocked() Snapshot {
	return Snapshot{State: c.state, Insights: append([]Insight{}, c.insights...)}
}

func (c *Coach) publish(snap Snapshot) {
	c.mu.Lock()
	fns := slices.Clone(c.onUpdate)
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
