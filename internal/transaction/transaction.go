package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/zentracker/internal/category"
)

var (
	// ErrInvalid marks input rejected at the creation boundary.
	ErrInvalid = errors.New("invalid transaction")
	// ErrMalformed marks persisted data that could not be decoded.
	ErrMalformed = errors.New("malformed transaction data")
	// ErrNotFound is returned by lookups for an id the store does not hold.
	ErrNotFound = errors.New("transaction not found")
)

// Type represents the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents one financial event. Amount is never negative; the
// direction is carried by Type.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        Type            `json:"type"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory,omitempty"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Note        string          `json:"note"`
}

// Label is the breakdown label: the sub-category when present, else the category.
func (t Transaction) Label() string {
	if t.SubCategory != "" {
		return t.SubCategory
	}

	return t.Category
}

// Signed returns the amount with expenses negated.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}

	return t.Amount
}

// Validate checks the invariants every stored record must hold: a non-nil id,
// a known type, a non-negative amount, an ISO date and no sub-category on an
// income. Category names are not checked against the taxonomy.
func (t Transaction) Validate() error {
	if t.ID == uuid.Nil {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}

	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, t.Type)
	}

	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalid)
	}

	if _, err := time.Parse(time.DateOnly, t.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalid, t.Date)
	}

	if t.Type == TypeIncome && t.SubCategory != "" {
		return fmt.Errorf("%w: income %s has a sub-category", ErrInvalid, t.ID)
	}

	return nil
}

type CreateParams struct {
	Amount      decimal.Decimal
	Type        Type
	Category    string
	SubCategory string
	Date        string
	Note        string
}

// New validates params and builds a transaction with a fresh id. A
// sub-category on an income is dropped.
func New(params CreateParams) (*Transaction, error) {
	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalid, params.Type)
	}

	if params.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalid)
	}

	if _, err := time.Parse(time.DateOnly, params.Date); err != nil {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalid, params.Date)
	}

	sub := params.SubCategory

	switch params.Type {
	case TypeIncome:
		if !category.IsIncome(params.Category) {
			return nil, fmt.Errorf("%w: unknown income source %q", ErrInvalid, params.Category)
		}

		sub = ""
	case TypeExpense:
		if !category.IsExpense(params.Category) {
			return nil, fmt.Errorf("%w: unknown expense category %q", ErrInvalid, params.Category)
		}

		if sub != "" && !category.IsSubCategory(params.Category, sub) {
			return nil, fmt.Errorf("%w: %q is not a sub-category of %q", ErrInvalid, sub, params.Category)
		}
	}

	return &Transaction{
		ID:          uuid.New(),
		Amount:      params.Amount,
		Type:        params.Type,
		Category:    params.Category,
		SubCategory: sub,
		Date:        params.Date,
		Note:        params.Note,
	}, nil
}

// ParseAmount parses user input into a non-negative amount. The sign of the
// input is discarded; blank or non-numeric input is rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalid)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", ErrInvalid, s)
	}

	return d.Abs(), nil
}
