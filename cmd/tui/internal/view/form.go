package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/zentracker/internal/category"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

// addFields backs the add-transaction form. It lives on the heap so the form
// bindings survive the value copies of the enclosing model.
type addFields struct {
	Type        string
	Amount      string
	Category    string
	SubCategory string
	Date        string
	Note        string
}

func newAddFields(typ transaction.Type) *addFields {
	f := &addFields{Type: string(typ), Date: today()}
	f.resetCategory()

	return f
}

// resetCategory selects the first entry of the taxonomy for the current type.
func (f *addFields) resetCategory() {
	f.SubCategory = ""

	if f.Type == string(transaction.TypeIncome) {
		f.Category = category.Income[0]
		return
	}

	f.Category = category.Expense[0].Name
	f.SubCategory = category.Expense[0].SubCategories[0]
}

func (f *addFields) params() (transaction.CreateParams, error) {
	amount, err := transaction.ParseAmount(f.Amount)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	return transaction.CreateParams{
		Amount:      amount,
		Type:        transaction.Type(f.Type),
		Category:    f.Category,
		SubCategory: f.SubCategory,
		Date:        f.Date,
		Note:        f.Note,
	}, nil
}

func newAddForm(f *addFields, styles *Styles) *huh.Form {
	isIncome := func() bool { return f.Type == string(transaction.TypeIncome) }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(transaction.TypeExpense)),
					huh.NewOption("Income", string(transaction.TypeIncome)),
				).
				Value(&f.Type),

			huh.NewInput().
				Title("Amount (₹)").
				Placeholder("0.00").
				Value(&f.Amount).
				Validate(func(s string) error {
					_, err := transaction.ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.Date).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					if isIncome() {
						return huh.NewOptions(category.Income...)
					}
					return huh.NewOptions(category.ExpenseNames()...)
				}, &f.Type).
				Value(&f.Category),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sub-category").
				OptionsFunc(func() []huh.Option[string] {
					opts := []huh.Option[string]{huh.NewOption("(none)", "")}
					return append(opts, huh.NewOptions(category.SubCategories(f.Category)...)...)
				}, &f.Category).
				Value(&f.SubCategory),
		).WithHideFunc(isIncome),

		huh.NewGroup(
			huh.NewInput().
				Title("Note").
				Placeholder("optional").
				Value(&f.Note),
		),
	).WithWidth(50).WithShowHelp(false).WithTheme(styles.FormTheme())
}

// confirmField backs a yes/no dialog.
type confirmField struct {
	Yes bool
}

func newConfirmForm(c *confirmField, title, description string, styles *Styles) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&c.Yes),
		),
	).WithWidth(50).WithShowHelp(false).WithTheme(styles.FormTheme())
}
