// Package export renders transactions as CSV for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

var header = []string{"id", "date", "type", "category", "sub_category", "amount", "note"}

// FileName names an export taken on the given day.
func FileName(today string) string {
	return fmt.Sprintf("zentracker-%s.csv", today)
}

// WriteCSV writes one row per transaction, in the order given, after a header
// row. Amounts are unsigned with two decimals; the type column carries the sign.
func WriteCSV(w io.Writer, txs []transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range txs {
		row := []string{
			t.ID.String(),
			t.Date,
			string(t.Type),
			t.Category,
			t.SubCategory,
			t.Amount.StringFixed(2),
			t.Note,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing transaction %s: %w", t.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
