package wizard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thandol/j101-generator/internal/domain"
	"github.com/thandol/j101-generator/internal/idnumber"
)

const maxIDLen = 13

// MaxChildren bounds formset parsing and re-rendering. It is a sanity
// limit on submitted row indices, not the PDF slot count.
const MaxChildren = 20

// Validators returns the step-specific validation rules for the default
// pipeline. now supplies the reference date for future-date checks.
func Validators(now func() time.Time) map[domain.StepID]Validator {
	if now == nil {
		now = time.Now
	}
	return map[domain.StepID]Validator{
		domain.StepApplicant:  validateApplicant,
		domain.StepRespondent: validateRespondent,
		domain.StepChildren:   childValidator(now),
		domain.StepIncome:     validateIncomeAssets,
		domain.StepFinancials: validateFinancials,
	}
}

func validateApplicant(form url.Values, _ *domain.WizardState) (StepData, FieldErrors) {
	errs := FieldErrors{}
	rec := collect(form,
		"full_name", "id_number", "date_of_birth", "residential_address",
		"postal_code", "work_address", "contact_phone", "work_phone",
		"nearest_police_station")

	requireField(rec, errs, "full_name", "Please enter your full name.")
	requireField(rec, errs, "id_number", "Please enter your South African ID number.")
	requireField(rec, errs, "residential_address", "Please enter your residential address.")
	requireField(rec, errs, "contact_phone", "Please enter a contact phone number.")
	checkIDShape(rec, errs)
	checkDOBMatchesID(rec, errs)

	if errs.Any() {
		return StepData{}, errs
	}
	return StepData{Record: rec}, nil
}

func validateRespondent(form url.Values, st *domain.WizardState) (StepData, FieldErrors) {
	errs := FieldErrors{}
	rec := collect(form,
		"full_name", "id_number", "date_of_birth", "home_address",
		"postal_code", "work_address", "contact_phone", "work_phone")

	requireField(rec, errs, "full_name", "Please enter the other parent's full name.")
	requireField(rec, errs, "home_address", "Please enter the other parent's home address.")
	checkIDShape(rec, errs)
	checkDOBMatchesID(rec, errs)

	// The respondent cannot be the applicant.
	applicantID := st.Record(domain.StepApplicant).Get("id_number")
	if id := rec.Get("id_number"); id != "" && applicantID != "" && id == applicantID {
		errs["id_number"] = "The respondent's ID number cannot be the same as the applicant's ID number."
	}

	if errs.Any() {
		return StepData{}, errs
	}
	return StepData{Record: rec}, nil
}

// childValidator parses formset-style input: child_details-N-full_name,
// child_details-N-date_of_birth, child_details-N-DELETE. Entries flagged
// for deletion or entirely empty are purged; the remaining sequence (which
// may be empty) is stored in submission order.
func childValidator(now func() time.Time) Validator {
	return func(form url.Values, _ *domain.WizardState) (StepData, FieldErrors) {
		errs := FieldErrors{}
		kept := []domain.StepRecord{}

		for i := 0; i < MaxChildren; i++ {
			prefix := fmt.Sprintf("%s-%d-", domain.StepChildren, i)
			name := strings.TrimSpace(form.Get(prefix + "full_name"))
			dobStr := strings.TrimSpace(form.Get(prefix + "date_of_birth"))
			deleted := form.Get(prefix+"DELETE") != ""

			if deleted || (name == "" && dobStr == "") {
				continue
			}
			if name == "" {
				errs[prefix+"full_name"] = "Please enter the child's full name."
				continue
			}
			if dobStr == "" {
				errs[prefix+"date_of_birth"] = "Please enter the child's date of birth."
				continue
			}
			dob, err := time.Parse("2006-01-02", dobStr)
			if err != nil {
				errs[prefix+"date_of_birth"] = "Enter a valid date (YYYY-MM-DD)."
				continue
			}
			if dob.After(now()) {
				errs[prefix+"date_of_birth"] = "A child's date of birth cannot be in the future. Please enter a valid date."
				continue
			}
			kept = append(kept, domain.StepRecord{
				"full_name":     name,
				"date_of_birth": dob.Format("2006-01-02"),
			})
		}

		if errs.Any() {
			return StepData{}, errs
		}
		return StepData{List: kept}, nil
	}
}

var incomeAssetFields = []string{
	"fixed_property", "investments", "savings", "shares", "motor_vehicles",
	"gross_salary", "other_income_1",
	"tax", "medical_aid", "pension", "other_deductions",
}

func validateIncomeAssets(form url.Values, _ *domain.WizardState) (StepData, FieldErrors) {
	errs := FieldErrors{}
	rec := domain.StepRecord{}
	for _, f := range incomeAssetFields {
		putAmount(form, rec, errs, f)
	}
	if errs.Any() {
		return StepData{}, errs
	}
	return StepData{Record: rec}, nil
}

func validateFinancials(form url.Values, _ *domain.WizardState) (StepData, FieldErrors) {
	errs := FieldErrors{}
	rec := collect(form,
		"legally_liable_reason", "child_in_care_reason", "date_not_supported",
		"first_payment_date", "payment_in_favour_of", "payment_day",
		"payment_made_to", "other_contributions_text")

	requireField(rec, errs, "legally_liable_reason",
		"Please explain why the other parent is legally required to maintain the child(ren).")
	requireField(rec, errs, "child_in_care_reason",
		"Please explain why the children are under your care.")

	for _, key := range []string{"date_not_supported", "first_payment_date"} {
		if v := rec.Get(key); v != "" {
			if _, err := time.Parse("2006-01-02", v); err != nil {
				errs[key] = "Enter a valid date (YYYY-MM-DD)."
			}
		}
	}
	if v := rec.Get("payment_day"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil || day < 1 || day > 31 {
			errs["payment_day"] = "Enter a day of the month between 1 and 31."
		}
	}

	for _, row := range domain.ExpenseRowDefs() {
		if row.SelfKey != "" {
			putAmount(form, rec, errs, row.SelfKey)
		}
		putAmount(form, rec, errs, row.ChildKey)
	}

	total := strings.TrimSpace(form.Get("total_maintenance_claimed"))
	if total == "" {
		errs["total_maintenance_claimed"] = "Please enter the total monthly maintenance you are claiming."
	} else {
		putAmount(form, rec, errs, "total_maintenance_claimed")
	}

	if errs.Any() {
		return StepData{}, errs
	}
	return StepData{Record: rec}, nil
}

// ── Shared helpers ────────────────────────────────────────────────────────────

// collect copies the named form fields into a StepRecord, trimming
// whitespace and dropping empties.
func collect(form url.Values, fields ...string) domain.StepRecord {
	rec := domain.StepRecord{}
	for _, f := range fields {
		if v := strings.TrimSpace(form.Get(f)); v != "" {
			rec[f] = v
		}
	}
	return rec
}

func requireField(rec domain.StepRecord, errs FieldErrors, field, msg string) {
	if rec.Get(field) == "" {
		errs[field] = msg
	}
}

func checkIDShape(rec domain.StepRecord, errs FieldErrors) {
	if id := rec.Get("id_number"); len(id) > maxIDLen {
		errs["id_number"] = "An ID number has at most 13 digits."
	}
}

// checkDOBMatchesID cross-checks a supplied birth date against the date
// derivable from the supplied ID number. A mismatch blocks progression.
func checkDOBMatchesID(rec domain.StepRecord, errs FieldErrors) {
	dob, ok := rec.Date("date_of_birth")
	if !ok {
		if v := rec.Get("date_of_birth"); v != "" {
			errs["date_of_birth"] = "Enter a valid date (YYYY-MM-DD)."
		}
		return
	}
	fromID, ok := idnumber.DateOfBirth(rec.Get("id_number"))
	if ok && !fromID.Equal(dob) {
		errs["date_of_birth"] = "The date of birth does not match the date of birth in the provided ID number. Please check both fields."
	}
}

// putAmount parses an optional decimal form field. Amounts must be
// non-negative; currency fields on this form never carry negative values.
func putAmount(form url.Values, rec domain.StepRecord, errs FieldErrors, field string) {
	v := strings.TrimSpace(form.Get(field))
	if v == "" {
		return
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		errs[field] = "Enter a valid amount."
		return
	}
	if d.IsNegative() {
		errs[field] = "Amounts cannot be negative."
		return
	}
	rec[field] = d.StringFixed(2)
}
