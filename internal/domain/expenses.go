package domain

// ExpenseRowDef names one expenditure category and the financials-step
// field keys carrying its applicant ("self") and child shares. SelfKey is
// empty for child-only categories (school costs etc.).
type ExpenseRowDef struct {
	Name     string
	SelfKey  string
	ChildKey string
}

// ExpenseRowDefs is the fixed J101 expenditure table, in form order.
func ExpenseRowDefs() []ExpenseRowDef {
	return []ExpenseRowDef{
		{"lodging", "self_lodging", "child_lodging"},
		{"groceries", "self_groceries", "child_groceries"},
		{"utilities", "self_utilities", "child_utilities"},
		{"rates_taxes", "self_rates_taxes", "child_rates_taxes"},
		{"laundry", "self_laundry", "child_laundry"},
		{"telephone", "self_telephone", "child_telephone"},
		{"clothing", "self_clothing", "child_clothing"},
		{"school_uniforms", "", "child_school_uniforms"},
		{"transport_public", "self_transport_public", "child_transport_public"},
		{"car_insurance", "self_car_insurance", "child_car_insurance"},
		{"car_maintenance", "self_car_maintenance", "child_car_maintenance"},
		{"fuel", "self_fuel", "child_fuel"},
		{"school_fees", "", "child_school_fees"},
		{"stationery", "", "child_stationery"},
		{"extramural", "", "child_extramural"},
		{"medical", "self_medical", "child_medical"},
		{"medication", "self_medication", "child_medication"},
		{"entertainment", "self_entertainment", "child_entertainment"},
		{"other", "self_other", "child_other"},
	}
}
