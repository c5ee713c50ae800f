package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

const currencySymbol = "₹"

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount renders a non-negative amount with Indian digit grouping and
// two decimals, e.g. ₹1,23,456.00.
func FormatAmount(d decimal.Decimal) string {
	f := d.Abs().Round(2).InexactFloat64()
	s := currencySymbol + printer.Sprint(number.Decimal(f, number.Scale(2)))

	if d.IsNegative() {
		return "-" + s
	}

	return s
}

// FormatSigned renders the amount of tx with a leading + or - by type.
func FormatSigned(tx transaction.Transaction) string {
	if tx.Type == transaction.TypeExpense {
		return "-" + FormatAmount(tx.Amount)
	}

	return "+" + FormatAmount(tx.Amount)
}
