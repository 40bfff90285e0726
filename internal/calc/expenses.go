package calc

import "github.com/shopspring/decimal"

// ExpenseShare is one expenditure row's applicant ("self") and child
// amounts. Categories with no self-side counterpart (school fees etc.)
// carry a zero Self.
type ExpenseShare struct {
	Self  decimal.Decimal
	Child decimal.Decimal
}

// RowTotal is the combined amount for the row.
func (e ExpenseShare) RowTotal() decimal.Decimal {
	return e.Self.Add(e.Child)
}

// ExpenseTotals accumulates the self and child columns across all rows.
type ExpenseTotals struct {
	Self  decimal.Decimal
	Child decimal.Decimal
}

// Add folds one row into the running column totals.
func (t *ExpenseTotals) Add(e ExpenseShare) {
	t.Self = t.Self.Add(e.Self)
	t.Child = t.Child.Add(e.Child)
}

// Combined is the grand total across both columns.
func (t ExpenseTotals) Combined() decimal.Decimal {
	return t.Self.Add(t.Child)
}
