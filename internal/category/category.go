package category

import "slices"

// Group is a top-level expense category with its sub-categories.
type Group struct {
	Name          string   `json:"name"`
	SubCategories []string `json:"subCategories"`
}

// Income lists the accepted income sources.
var Income = []string{
	"SALARY",
	"BUSINESS INCOME",
	"FREELANCE",
	"INVESTMENTS & DIVIDENDS",
	"RENTAL INCOME",
	"GIFTS",
	"REFUNDS",
	"OTHER INCOME",
}

// Expense is the two-level expense taxonomy. Order is display order; the
// first group and its first entry are the form defaults.
var Expense = []Group{
	{
		Name: "HOUSEHOLD & LIVING EXPENSES",
		SubCategories: []string{
			"Rent",
			"Groceries",
			"Electricity",
			"Water",
			"Gas",
			"Internet",
			"Mobile Recharge",
			"Maintenance",
			"Domestic Help",
		},
	},
	{
		Name: "FOOD & DINING",
		SubCategories: []string{
			"Restaurants",
			"Food Delivery",
			"Cafes & Snacks",
		},
	},
	{
		Name: "TRANSPORTATION",
		SubCategories: []string{
			"Fuel",
			"Public Transport",
			"Cab & Auto",
			"Vehicle Maintenance",
			"Parking & Tolls",
		},
	},
	{
		Name: "HEALTH & WELLNESS",
		SubCategories: []string{
			"Doctor",
			"Medicines",
			"Insurance Premium",
			"Fitness",
		},
	},
	{
		Name: "EDUCATION",
		SubCategories: []string{
			"School Fees",
			"Courses",
			"Books",
		},
	},
	{
		Name: "SHOPPING & PERSONAL",
		SubCategories: []string{
			"Clothing",
			"Electronics",
			"Personal Care",
			"Gifts",
		},
	},
	{
		Name: "ENTERTAINMENT",
		SubCategories: []string{
			"Movies & Events",
			"Subscriptions",
			"Travel",
			"Hobbies",
		},
	},
	{
		Name: "FINANCIAL",
		SubCategories: []string{
			"EMI & Loans",
			"Credit Card Bill",
			"Savings & Investments",
			"Taxes",
			"Bank Charges",
		},
	},
	{
		Name: "OTHERS",
		SubCategories: []string{
			"Donations",
			"Miscellaneous",
		},
	},
}

// ExpenseNames returns the top-level expense category names in display order.
func ExpenseNames() []string {
	names := make([]string, len(Expense))
	for i, g := range Expense {
		names[i] = g.Name
	}

	return names
}

// SubCategories returns the sub-categories of an expense category, or nil if
// the category is unknown.
func SubCategories(name string) []string {
	for _, g := range Expense {
		if g.Name == name {
			return g.SubCategories
		}
	}

	return nil
}

func IsIncome(name string) bool {
	return slices.Contains(Income, name)
}

func IsExpense(name string) bool {
	return SubCategories(name) != nil
}

// IsSubCategory reports whether sub belongs to the expense category name.
func IsSubCategory(name, sub string) bool {
	return slices.Contains(SubCategories(name), sub)
}
