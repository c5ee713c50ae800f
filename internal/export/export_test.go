package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

func TestWriteCSV(t *testing.T) {
	id := uuid.MustParse("6f1c5a4e-5a53-4b59-9d38-0c4d9e0b4d11")
	txs := []transaction.Transaction{
		{
			ID:          id,
			Amount:      decimal.RequireFromString("500"),
			Type:        transaction.TypeExpense,
			Category:    "HOUSEHOLD & LIVING EXPENSES",
			SubCategory: "Groceries",
			Date:        "2024-05-01",
			Note:        "milk, eggs",
		},
		{
			ID:       id,
			Amount:   decimal.RequireFromString("1234.5"),
			Type:     transaction.TypeIncome,
			Category: "SALARY",
			Date:     "2024-05-02",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txs))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{id.String(), "2024-05-01", "EXPENSE", "HOUSEHOLD & LIVING EXPENSES", "Groceries", "500.00", "milk, eggs"}, rows[1])
	assert.Equal(t, "1234.50", rows[2][5])
	assert.Empty(t, rows[2][4])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "id,date,type,category,sub_category,amount,note\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSV_WriterError(t *testing.T) {
	assert.Error(t, WriteCSV(failingWriter{}, nil))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "zentracker-2024-05-15.csv", FileName("2024-05-15"))
}
