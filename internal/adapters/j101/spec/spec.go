// Package spec declares the static mapping tables for the J101 maintenance
// application form: logical field names to the template's physical field
// identifiers, the per-character groups used for fixed-width boxes, and
// the child-table slots. Physical identifiers follow the manually renamed
// fields of the fillable J101 template.
package spec

import "fmt"

// Character-group lengths on the form: party birth dates are stamped as
// DDMMYY, identity numbers as 13 digits, child birth dates as DDMMYYYY.
const (
	DOBLen      = 6
	IDLen       = 13
	ChildDOBLen = 8
)

// ChildSlotCount is the number of child rows the printed form provides.
// Children beyond this count do not fit on the certified template.
const ChildSlotCount = 4

// ChildSlot groups the physical identifiers for one row of the child
// table: a name field, an amount field, and an 8-character DOB group.
type ChildSlot struct {
	Name   string
	Amount string
	DOB    []string
}

// FieldMap maps logical record names to the template's physical field
// identifiers. Only fields listed here can ever be emitted.
var FieldMap = buildFieldMap()

// CharGroups maps a logical group name to the ordered physical fields
// that each receive exactly one character of the source value.
var CharGroups = map[string][]string{
	"applicant_dob":  charRange("p1_applicant_dob", DOBLen),
	"applicant_id":   charRange("p1_applicant_id", IDLen),
	"respondent_dob": charRange("p1_respondent_dob", DOBLen),
	"respondent_id":  charRange("p1_respondent_id", IDLen),
}

// ChildSlots lists the child-table rows in form order.
var ChildSlots = buildChildSlots()

// ExpenseRowNames lists the expenditure categories in form order; the
// financials field keys for each live in domain.ExpenseRowDefs.
var ExpenseRowNames = []string{
	"lodging", "groceries", "utilities", "rates_taxes", "laundry",
	"telephone", "clothing", "school_uniforms", "transport_public",
	"car_insurance", "car_maintenance", "fuel", "school_fees",
	"stationery", "extramural", "medical", "medication",
	"entertainment", "other",
}

func buildFieldMap() map[string]string {
	m := map[string]string{
		"applicant_ref_no":          "p1_ref_no",
		"applicant_name":            "p1_applicant_name",
		"applicant_age":             "p1_applicant_age",
		"applicant_address_1":       "p1_applicant_address",
		"applicant_phone_code":      "p1_applicant_phone_code",
		"applicant_phone_number":    "p1_applicant_phone_number",
		"applicant_work_address_1":  "p1_applicant_work_address",
		"applicant_work_phone":      "p1_applicant_work_phone",
		"applicant_police_station":  "p1_applicant_police_station",
		"respondent_name":           "p1_respondent_name",
		"respondent_age":            "p1_respondent_age",
		"respondent_address_1":      "p1_respondent_address",
		"respondent_phone_code":     "p1_respondent_phone_code",
		"respondent_phone_number":   "p1_respondent_phone_number",
		"respondent_work_address_1": "p1_respondent_work_address",
		"respondent_work_phone":     "p1_respondent_work_phone",

		"reason_liable_1":       "p2_reason_liable_1",
		"reason_liable_2":       "p2_reason_liable_2",
		"reason_care_1":         "p2_reason_care_1",
		"reason_care_2":         "p2_reason_care_2",
		"date_not_supported":    "p2_date_not_supported",
		"first_payment_date":    "p2_first_payment_date",
		"payment_in_favour_of":  "p2_payment_in_favour_of",
		"payment_day":           "p2_payment_day",
		"payment_made_to":       "p2_payment_made_to",
		"other_contributions_1": "p2_other_contributions_1",
		"other_contributions_2": "p2_other_contributions_2",
		"claim_total":           "p2_claim_total",

		"asset_fixed_property": "p3_asset_fixed_property",
		"asset_investments":    "p3_asset_investments",
		"asset_savings":        "p3_asset_savings",
		"asset_shares":         "p3_asset_shares",
		"asset_motor_vehicles": "p3_asset_motor_vehicles",

		"income_gross_salary":   "p3_income_gross_salary",
		"income_other_1":        "p3_income_other_1",
		"deduction_tax":         "p3_deduction_tax",
		"deduction_medical_aid": "p3_deduction_medical_aid",
		"deduction_pension":     "p3_deduction_pension",
		"deduction_other":       "p3_deduction_other",
		"income_nett_salary":    "p3_income_nett_salary",
		"income_total":          "p3_income_total",

		"expenditure_total_self_col":  "p4_exp_total_self",
		"expenditure_total_child_col": "p4_exp_total_child",
		"expenditure_total_final":     "p4_exp_total_combined",
	}
	for _, name := range ExpenseRowNames {
		m["expense_self_"+name] = fmt.Sprintf("p4_exp_%s_self", name)
		m["expense_child_"+name] = fmt.Sprintf("p4_exp_%s_child", name)
		m["expense_total_"+name] = fmt.Sprintf("p4_exp_%s_total", name)
	}
	return m
}

func buildChildSlots() []ChildSlot {
	slots := make([]ChildSlot, ChildSlotCount)
	for i := range slots {
		n := i + 1
		slots[i] = ChildSlot{
			Name:   fmt.Sprintf("p1_child%d_name", n),
			Amount: fmt.Sprintf("p1_child%d_amount", n),
			DOB:    charRange(fmt.Sprintf("p1_child%d_dob", n), ChildDOBLen),
		}
	}
	return slots
}

// charRange builds the ordered physical identifiers prefix_1..prefix_n.
func charRange(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s_%d", prefix, i+1)
	}
	return out
}
