package advice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

type Service struct {
	advisor    Advisor
	timeout    time.Duration
	sampleSize int
}

// NewService builds a Service. Non-positive timeout or sampleSize fall back to
// 20s and DefaultSampleSize.
func NewService(advisor Advisor, timeout time.Duration, sampleSize int) *Service {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	return &Service{advisor: advisor, timeout: timeout, sampleSize: sampleSize}
}

// Request asks the advisor for insights on txs. Below MinTransactions it
// returns ErrNotEnoughData without contacting the advisor. Every other failure
// is logged and answered with Fallback.
func (s *Service) Request(ctx context.Context, txs []transaction.Transaction) ([]Insight, error) {
	if len(txs) < MinTransactions {
		return nil, ErrNotEnoughData
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	insights, err := s.advisor.Advise(ctx, SampleOf(txs, s.sampleSize))
	if err == nil {
		err = validate(insights)
	}

	if err != nil {
		slog.Warn("failed to get financial advice, using fallback", "error", err)
		return Fallback(), nil
	}

	return insights, nil
}

func validate(insights []Insight) error {
	if len(insights) == 0 {
		return fmt.Errorf("%w: empty insight list", ErrSchema)
	}

	for i, in := range insights {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("insight %d: %w", i, err)
		}
	}

	return nil
}
