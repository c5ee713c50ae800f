// Package advice turns a snapshot of the transaction store into a short list
// of coaching insights. Any failure of the remote advisor degrades to a single
// fixed insight; it is never surfaced to the user.
package advice

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

const (
	// MinTransactions is the smallest collection advice is requested for.
	MinTransactions = 3
	// DefaultSampleSize caps how many recent transactions are sent.
	DefaultSampleSize = 20
)

var (
	ErrNotEnoughData = errors.New("not enough transactions for advice")
	ErrInFlight      = errors.New("advice request already in flight")
	ErrUnavailable   = errors.New("advisor not configured")
	ErrSchema        = errors.New("advice response does not match schema")
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

type Insight struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion"`
	Sentiment   Sentiment `json:"sentiment"`
}

func (i Insight) Validate() error {
	if i.Title == "" {
		return fmt.Errorf("%w: missing title", ErrSchema)
	}

	if i.Description == "" {
		return fmt.Errorf("%w: missing description", ErrSchema)
	}

	if i.Suggestion == "" {
		return fmt.Errorf("%w: missing suggestion", ErrSchema)
	}

	if !i.Sentiment.Valid() {
		return fmt.Errorf("%w: unknown sentiment %q", ErrSchema, i.Sentiment)
	}

	return nil
}

// Sample is the reduced form of a transaction sent to the advisor.
type Sample struct {
	Type     transaction.Type `json:"type"`
	Amount   decimal.Decimal  `json:"amount"`
	Category string           `json:"category"`
	Note     string           `json:"note"`
}

//go:generate mockgen -source=advice.go -destination=advisor_mock.go -package=advice
type Advisor interface {
	Advise(ctx context.Context, samples []Sample) ([]Insight, error)
}

// Fallback is the insight shown whenever real advice cannot be produced.
func Fallback() []Insight {
	return []Insight{{
		Title:       "Keep it up!",
		Description: "You're taking the first step towards financial freedom by tracking your spending.",
		Suggestion:  "Add more transactions to get personalized AI insights.",
		Sentiment:   SentimentPositive,
	}}
}

// SampleOf returns the last n transactions in store order.
func SampleOf(txs []transaction.Transaction, n int) []Sample {
	start := max(len(txs)-n, 0)
	out := make([]Sample, 0, len(txs)-start)

	for _, tx := range txs[start:] {
		out = append(out, Sample{
			Type:     tx.Type,
			Amount:   tx.Amount,
			Category: tx.Category,
			Note:     tx.Note,
		})
	}

	return out
}

// Unavailable is the advisor used when no API key is configured.
type Unavailable struct{}

func (Unavailable) Advise(context.Context, []Sample) ([]Insight, error) {
	return nil, ErrUnavailable
}
