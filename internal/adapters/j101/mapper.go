// Package j101 aggregates a completed WizardState into the flat physical
// field mapping consumed by the form filler. All derived values (ages, net
// income, per-child apportionment, wrapped text lines, expense totals) are
// recomputed from scratch on every call; nothing here is persisted.
package j101

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thandol/j101-generator/internal/adapters/j101/spec"
	"github.com/thandol/j101-generator/internal/calc"
	"github.com/thandol/j101-generator/internal/domain"
	"github.com/thandol/j101-generator/internal/idnumber"
)

// Form line widths on the printed template.
const (
	addressWidth       = 85
	reasonLiableWidth  = 75
	reasonCareWidth    = 65
	contributionsWidth = 80
)

const (
	dobPlaceholder      = "------"
	childDOBPlaceholder = "--------"
)

type Mapper struct {
	log *slog.Logger
}

func NewMapper(log *slog.Logger) *Mapper {
	if log == nil {
		log = slog.Default()
	}
	return &Mapper{log: log}
}

// BuildFieldData projects the full wizard state into physical field
// values. Monetary fields equal to zero are omitted entirely rather than
// rendered as "0.00"; the claim total is the one exception, stamped
// unconditionally.
func (m *Mapper) BuildFieldData(st *domain.WizardState, now time.Time) map[string]string {
	applicant := st.Record(domain.StepApplicant)
	respondent := st.Record(domain.StepRespondent)
	children := st.List(domain.StepChildren)
	income := st.Record(domain.StepIncome)
	financials := st.Record(domain.StepFinancials)

	out := map[string]string{}

	// ── Income and deductions ────────────────────────────────────────────
	gross := income.Amount("gross_salary")
	other := income.Amount("other_income_1")
	nett := calc.NetSalary(gross,
		income.Amount("tax"), income.Amount("medical_aid"),
		income.Amount("pension"), income.Amount("other_deductions"))
	total := calc.TotalIncome(nett, other)

	// ── Party identity ───────────────────────────────────────────────────
	applicantDOB := resolveDOB(applicant)
	respondentDOB := resolveDOB(respondent)

	applicantPhoneCode, applicantPhoneRest := calc.SplitPhone(applicant.Get("contact_phone"))
	respondentPhoneCode, respondentPhoneRest := calc.SplitPhone(respondent.Get("contact_phone"))

	applicantAddr := joinAddress(applicant.Get("residential_address"), applicant.Get("postal_code"))
	respondentAddr := joinAddress(respondent.Get("home_address"), respondent.Get("postal_code"))

	liable1, liable2 := calc.WrapText(financials.Get("legally_liable_reason"), reasonLiableWidth)
	care1, care2 := calc.WrapText(financials.Get("child_in_care_reason"), reasonCareWidth)
	contrib1, contrib2 := calc.WrapText(financials.Get("other_contributions_text"), contributionsWidth)

	applicantAddr1, _ := calc.WrapText(applicantAddr, addressWidth)
	respondentAddr1, _ := calc.WrapText(respondentAddr, addressWidth)

	logical := map[string]string{
		"applicant_ref_no":          "",
		"applicant_name":            applicant.Get("full_name"),
		"applicant_age":             calc.AgeString(applicantDOB, now),
		"applicant_address_1":       applicantAddr1,
		"applicant_phone_code":      applicantPhoneCode,
		"applicant_phone_number":    applicantPhoneRest,
		"applicant_work_address_1":  applicant.Get("work_address"),
		"applicant_work_phone":      applicant.Get("work_phone"),
		"applicant_police_station":  applicant.Get("nearest_police_station"),
		"respondent_name":           respondent.Get("full_name"),
		"respondent_age":            calc.AgeString(respondentDOB, now),
		"respondent_address_1":      respondentAddr1,
		"respondent_phone_code":     respondentPhoneCode,
		"respondent_phone_number":   respondentPhoneRest,
		"respondent_work_address_1": respondent.Get("work_address"),
		"respondent_work_phone":     respondent.Get("work_phone"),

		"reason_liable_1":       liable1,
		"reason_liable_2":       liable2,
		"reason_care_1":         care1,
		"reason_care_2":         care2,
		"date_not_supported":    financials.Get("date_not_supported"),
		"first_payment_date":    financials.Get("first_payment_date"),
		"payment_in_favour_of":  financials.Get("payment_in_favour_of"),
		"payment_day":           financials.Get("payment_day"),
		"payment_made_to":       financials.Get("payment_made_to"),
		"other_contributions_1": contrib1,
		"other_contributions_2": contrib2,

		"asset_fixed_property": calc.Money(income.Amount("fixed_property")),
		"asset_investments":    calc.Money(income.Amount("investments")),
		"asset_savings":        calc.Money(income.Amount("savings")),
		"asset_shares":         calc.Money(income.Amount("shares")),
		"asset_motor_vehicles": calc.Money(income.Amount("motor_vehicles")),

		"income_gross_salary":   calc.Money(gross),
		"income_other_1":        calc.Money(other),
		"deduction_tax":         calc.Money(income.Amount("tax")),
		"deduction_medical_aid": calc.Money(income.Amount("medical_aid")),
		"deduction_pension":     calc.Money(income.Amount("pension")),
		"deduction_other":       calc.Money(income.Amount("other_deductions")),
		"income_nett_salary":    calc.Money(nett),
		"income_total":          calc.Money(total),
	}

	// Projection: emit only present, non-zero-sentinel values.
	for name, value := range logical {
		if value == "" || value == "0.00" || value == "0" {
			continue
		}
		if phys, ok := spec.FieldMap[name]; ok {
			out[phys] = value
		}
	}

	// ── Fixed-width character groups ─────────────────────────────────────
	stampChars(out, spec.CharGroups["applicant_dob"], formatDOB(applicantDOB, "020106", dobPlaceholder))
	stampChars(out, spec.CharGroups["applicant_id"], applicant.Get("id_number"))
	stampChars(out, spec.CharGroups["respondent_dob"], formatDOB(respondentDOB, "020106", dobPlaceholder))
	stampChars(out, spec.CharGroups["respondent_id"], respondent.Get("id_number"))

	// ── Child table ──────────────────────────────────────────────────────
	claimed := financials.Amount("total_maintenance_claimed")
	perChild := calc.Apportion(claimed, len(children))

	if dropped := len(children) - len(spec.ChildSlots); dropped > 0 {
		// The certified form only has spec.ChildSlotCount rows; the extra
		// children still appear on the summary and exports.
		m.log.Warn("child entries exceed form capacity; not stamped onto the form",
			"children", len(children), "slots", len(spec.ChildSlots), "dropped", dropped)
	}

	for i, child := range children {
		if i >= len(spec.ChildSlots) {
			break
		}
		slot := spec.ChildSlots[i]
		out[slot.Name] = child.Get("full_name")
		out[slot.Amount] = calc.Money(perChild)
		dobStr := childDOBPlaceholder
		if dob, ok := child.Date("date_of_birth"); ok {
			dobStr = dob.Format("02012006")
		}
		stampChars(out, slot.DOB, dobStr)
	}

	// The claim total is stamped even when zero.
	out[spec.FieldMap["claim_total"]] = calc.Money(claimed)

	// ── Expenditure table ────────────────────────────────────────────────
	var totals calc.ExpenseTotals
	for _, row := range domain.ExpenseRowDefs() {
		share := calc.ExpenseShare{Child: financials.Amount(row.ChildKey)}
		if row.SelfKey != "" {
			share.Self = financials.Amount(row.SelfKey)
		}
		totals.Add(share)

		putPositive(out, "expense_self_"+row.Name, share.Self)
		putPositive(out, "expense_child_"+row.Name, share.Child)
		putPositive(out, "expense_total_"+row.Name, share.RowTotal())
	}
	putPositive(out, "expenditure_total_self_col", totals.Self)
	putPositive(out, "expenditure_total_child_col", totals.Child)
	putPositive(out, "expenditure_total_final", totals.Combined())

	return out
}

// resolveDOB prefers the date encoded in the party's ID number, falling
// back to the explicitly supplied birth date field.
func resolveDOB(rec domain.StepRecord) *time.Time {
	if dob, ok := idnumber.DateOfBirth(rec.Get("id_number")); ok {
		return &dob
	}
	if dob, ok := rec.Date("date_of_birth"); ok {
		return &dob
	}
	return nil
}

func formatDOB(dob *time.Time, layout, placeholder string) string {
	if dob == nil {
		return placeholder
	}
	return dob.Format(layout)
}

func joinAddress(addr, postalCode string) string {
	if addr != "" && postalCode != "" {
		return addr + ", " + postalCode
	}
	return addr
}

// stampChars right-pads value to the group's length and writes one
// character per physical field, positionally.
func stampChars(out map[string]string, group []string, value string) {
	for len(value) < len(group) {
		value += " "
	}
	for i, phys := range group {
		out[phys] = string(value[i])
	}
}

// putPositive emits a monetary field only when strictly greater than zero.
func putPositive(out map[string]string, logical string, d decimal.Decimal) {
	if !d.IsPositive() {
		return
	}
	if phys, ok := spec.FieldMap[logical]; ok {
		out[phys] = calc.Money(d)
	}
}
