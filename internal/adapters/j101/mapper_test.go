package j101_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/thandol/j101-generator/internal/adapters/j101"
	"github.com/thandol/j101-generator/internal/adapters/j101/spec"
	"github.com/thandol/j101-generator/internal/domain"
)

var genNow = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

// sampleState mirrors a fully completed wizard session.
func sampleState() *domain.WizardState {
	st := domain.NewWizardState(domain.DefaultPipeline())
	st.SetRecord(domain.StepApplicant, domain.StepRecord{
		"full_name":              "Mary Applicant",
		"id_number":              "8501155180085",
		"residential_address":    "123 Sample Street, Suburbville",
		"postal_code":            "7925",
		"work_address":           "456 Business Park, Century City",
		"contact_phone":          "0821234567",
		"nearest_police_station": "Cape Town Central",
	})
	st.SetRecord(domain.StepRespondent, domain.StepRecord{
		"full_name":     "John Respondent",
		"id_number":     "8203205190087",
		"home_address":  "789 Other Road, Othertown",
		"postal_code":   "8001",
		"work_address":  "101 Industrial Way, Epping",
		"contact_phone": "0739876543",
	})
	st.SetList(domain.StepChildren, []domain.StepRecord{
		{"full_name": "Thabo Junior Applicant", "date_of_birth": "2015-06-10"},
		{"full_name": "Jane Applicant", "date_of_birth": "2018-11-22"},
	})
	st.SetRecord(domain.StepIncome, domain.StepRecord{
		"fixed_property": "1200000.00",
		"investments":    "50000.00",
		"savings":        "15000.00",
		"shares":         "0.00",
		"motor_vehicles": "85000.00",
		"gross_salary":   "25000.00",
		"other_income_1": "500.00",
		"tax":            "4500.00",
		"medical_aid":    "1800.00",
		"pension":        "2000.00",
		"other_deductions": "150.00",
	})
	st.SetRecord(domain.StepFinancials, domain.StepRecord{
		"legally_liable_reason":     "He is the biological father of both children and is legally required to contribute towards their upbringing.",
		"child_in_care_reason":      "The children have lived with me exclusively since their respective births. I am their primary caregiver.",
		"date_not_supported":        "2024-01-01",
		"payment_day":               "1",
		"payment_made_to":           "The Applicant, M. Applicant",
		"other_contributions_text":  "50% of school fees and any medical expenses not covered by the medical aid.",
		"total_maintenance_claimed": "8000.00",
		"self_lodging":              "4000.00",
		"child_lodging":             "4000.00",
		"self_transport_public":     "0.00",
		"child_transport_public":    "450.00",
		"child_school_fees":         "3000.00",
	})
	return st
}

func build(t *testing.T, st *domain.WizardState) map[string]string {
	t.Helper()
	return j101.NewMapper(slog.Default()).BuildFieldData(st, genNow)
}

func TestBuildFieldDataIncome(t *testing.T) {
	out := build(t, sampleState())

	want := map[string]string{
		"p3_income_gross_salary":   "25000.00",
		"p3_deduction_tax":         "4500.00",
		"p3_deduction_medical_aid": "1800.00",
		"p3_deduction_pension":     "2000.00",
		"p3_deduction_other":       "150.00",
		"p3_income_nett_salary":    "16550.00",
		"p3_income_other_1":        "500.00",
		"p3_income_total":          "17050.00",
	}
	for phys, val := range want {
		if out[phys] != val {
			t.Errorf("%s = %q, want %q", phys, out[phys], val)
		}
	}
}

// Zero-valued monetary fields are omitted entirely, never rendered as
// "0.00".
func TestBuildFieldDataZeroSentinel(t *testing.T) {
	st := sampleState()
	out := build(t, st)
	if _, ok := out["p3_asset_shares"]; ok {
		t.Error("zero-valued asset_shares should not be emitted")
	}

	rec := st.Record(domain.StepIncome)
	rec["shares"] = "0.01"
	out = build(t, st)
	if got := out["p3_asset_shares"]; got != "0.01" {
		t.Errorf("asset_shares = %q, want 0.01", got)
	}
}

func TestBuildFieldDataCharStamping(t *testing.T) {
	out := build(t, sampleState())

	id := "8501155180085"
	for i, phys := range spec.CharGroups["applicant_id"] {
		if out[phys] != string(id[i]) {
			t.Errorf("%s = %q, want %q", phys, out[phys], string(id[i]))
		}
	}
	// DOB from the ID number, stamped DDMMYY.
	dob := "150185"
	for i, phys := range spec.CharGroups["applicant_dob"] {
		if out[phys] != string(dob[i]) {
			t.Errorf("%s = %q, want %q", phys, out[phys], string(dob[i]))
		}
	}
}

func TestBuildFieldDataDOBFallback(t *testing.T) {
	st := sampleState()
	st.SetRecord(domain.StepRespondent, domain.StepRecord{
		"full_name":     "John Respondent",
		"home_address":  "789 Other Road",
		"date_of_birth": "1982-03-20", // no usable ID number
	})
	out := build(t, st)

	if got := out["p1_respondent_age"]; got != "42" {
		t.Errorf("respondent age = %q, want 42", got)
	}
	dob := "200382"
	for i, phys := range spec.CharGroups["respondent_dob"] {
		if out[phys] != string(dob[i]) {
			t.Errorf("%s = %q, want %q", phys, out[phys], string(dob[i]))
		}
	}
	// Absent ID number stamps spaces, not garbage.
	for _, phys := range spec.CharGroups["respondent_id"] {
		if out[phys] != " " {
			t.Errorf("%s = %q, want space", phys, out[phys])
		}
	}
}

func TestBuildFieldDataMissingDOBPlaceholder(t *testing.T) {
	st := sampleState()
	st.SetRecord(domain.StepRespondent, domain.StepRecord{
		"full_name":    "John Respondent",
		"home_address": "789 Other Road",
	})
	out := build(t, st)
	for _, phys := range spec.CharGroups["respondent_dob"] {
		if out[phys] != "-" {
			t.Errorf("%s = %q, want dash placeholder", phys, out[phys])
		}
	}
	if _, ok := out["p1_respondent_age"]; ok {
		t.Error("respondent age should be absent without a birth date")
	}
}

func TestBuildFieldDataChildren(t *testing.T) {
	out := build(t, sampleState())

	if got := out["p1_child1_name"]; got != "Thabo Junior Applicant" {
		t.Errorf("child 1 name = %q", got)
	}
	// 8000.00 across two children.
	if got := out["p1_child1_amount"]; got != "4000.00" {
		t.Errorf("child 1 amount = %q, want 4000.00", got)
	}
	if got := out["p1_child2_amount"]; got != "4000.00" {
		t.Errorf("child 2 amount = %q, want 4000.00", got)
	}
	// DDMMYYYY stamping for child 2: 2018-11-22.
	dob := "22112018"
	for i, phys := range spec.ChildSlots[1].DOB {
		if out[phys] != string(dob[i]) {
			t.Errorf("%s = %q, want %q", phys, out[phys], string(dob[i]))
		}
	}
	// Unused slots stay empty.
	if _, ok := out["p1_child3_name"]; ok {
		t.Error("child slot 3 should be empty")
	}
}

func TestBuildFieldDataChildOverflowDropped(t *testing.T) {
	st := sampleState()
	children := make([]domain.StepRecord, 6)
	for i := range children {
		children[i] = domain.StepRecord{
			"full_name":     "Child",
			"date_of_birth": "2015-06-10",
		}
	}
	st.SetList(domain.StepChildren, children)
	out := build(t, st)

	if _, ok := out["p1_child4_name"]; !ok {
		t.Error("child slot 4 should be filled")
	}
	for phys := range out {
		if phys == "p1_child5_name" || phys == "p1_child6_name" {
			t.Errorf("overflow child stamped into %s", phys)
		}
	}
}

func TestBuildFieldDataZeroChildrenNoDivisionError(t *testing.T) {
	st := sampleState()
	st.SetList(domain.StepChildren, nil)
	out := build(t, st) // must not panic
	if got := out["p2_claim_total"]; got != "8000.00" {
		t.Errorf("claim total = %q, want 8000.00", got)
	}
}

func TestBuildFieldDataExpenses(t *testing.T) {
	out := build(t, sampleState())

	if got := out["p4_exp_lodging_self"]; got != "4000.00" {
		t.Errorf("lodging self = %q", got)
	}
	if got := out["p4_exp_lodging_total"]; got != "8000.00" {
		t.Errorf("lodging total = %q", got)
	}
	// Zero self share is omitted while the child share is present.
	if _, ok := out["p4_exp_transport_public_self"]; ok {
		t.Error("zero transport self share should be omitted")
	}
	if got := out["p4_exp_transport_public_child"]; got != "450.00" {
		t.Errorf("transport child = %q", got)
	}
	// Self-less category.
	if got := out["p4_exp_school_fees_child"]; got != "3000.00" {
		t.Errorf("school fees child = %q", got)
	}
	if got := out["p4_exp_school_fees_total"]; got != "3000.00" {
		t.Errorf("school fees total = %q", got)
	}

	// Column and combined grand totals.
	if got := out["p4_exp_total_self"]; got != "4000.00" {
		t.Errorf("self column total = %q", got)
	}
	if got := out["p4_exp_total_child"]; got != "7450.00" {
		t.Errorf("child column total = %q", got)
	}
	if got := out["p4_exp_total_combined"]; got != "11450.00" {
		t.Errorf("combined total = %q", got)
	}
}

func TestBuildFieldDataWrappedReasons(t *testing.T) {
	out := build(t, sampleState())
	line1 := out["p2_reason_liable_1"]
	line2 := out["p2_reason_liable_2"]
	if line1 == "" || line2 == "" {
		t.Fatalf("expected the liability reason to wrap, got %q / %q", line1, line2)
	}
	if len(line1) > 75 {
		t.Errorf("first line exceeds width: %d chars", len(line1))
	}
}

func TestBuildFieldDataAddressConcat(t *testing.T) {
	out := build(t, sampleState())
	want := "123 Sample Street, Suburbville, 7925"
	if got := out["p1_applicant_address"]; got != want {
		t.Errorf("applicant address = %q, want %q", got, want)
	}
	if got := out["p1_applicant_phone_code"]; got != "082" {
		t.Errorf("phone code = %q", got)
	}
	if got := out["p1_applicant_phone_number"]; got != "1234567" {
		t.Errorf("phone number = %q", got)
	}
}
