// Package export renders a wizard session as human-readable
// section/question/answer triples and serializes them as CSV or XLSX for
// the applicant's own records. The exports carry everything entered,
// including child entries beyond the printed form's capacity.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thandol/j101-generator/internal/domain"
)

// Row is one answered question in a section of the intake.
type Row struct {
	Section  string
	Question string
	Answer   string
}

// Header is the leading row of every tabular export.
var Header = [3]string{"Section", "Question", "Answer"}

var sectionTitles = map[domain.StepID]string{
	domain.StepApplicant:  "Applicant Details",
	domain.StepRespondent: "Respondent Details",
	domain.StepChildren:   "Child Details",
	domain.StepIncome:     "Income & Assets",
	domain.StepFinancials: "Financial Details",
}

// fieldOrder fixes the export order of single-record steps to the order
// the intake forms present them. Keys not listed here (none today) are
// appended alphabetically.
var fieldOrder = map[domain.StepID][]string{
	domain.StepApplicant: {
		"full_name", "id_number", "date_of_birth", "residential_address",
		"postal_code", "work_address", "contact_phone", "work_phone",
		"nearest_police_station",
	},
	domain.StepRespondent: {
		"full_name", "id_number", "date_of_birth", "home_address",
		"postal_code", "work_address", "contact_phone", "work_phone",
	},
	domain.StepIncome: {
		"fixed_property", "investments", "savings", "shares", "motor_vehicles",
		"gross_salary", "other_income_1",
		"tax", "medical_aid", "pension", "other_deductions",
	},
	domain.StepFinancials: financialsOrder(),
}

var childFieldOrder = []string{"full_name", "date_of_birth"}

func financialsOrder() []string {
	order := []string{
		"legally_liable_reason", "child_in_care_reason", "date_not_supported",
		"first_payment_date", "payment_in_favour_of", "payment_day",
		"payment_made_to", "other_contributions_text",
		"total_maintenance_claimed",
	}
	for _, row := range domain.ExpenseRowDefs() {
		if row.SelfKey != "" {
			order = append(order, row.SelfKey)
		}
		order = append(order, row.ChildKey)
	}
	return order
}

// Rows flattens the wizard state into export rows in pipeline order,
// skipping steps and fields the applicant never filled in.
func Rows(st *domain.WizardState, pipeline []domain.StepConfig) []Row {
	var out []Row
	for _, cfg := range pipeline {
		switch cfg.Kind {
		case domain.StepList:
			for i, rec := range st.List(cfg.ID) {
				section := fmt.Sprintf("%s %d", sectionTitles[cfg.ID], i+1)
				out = append(out, recordRows(section, rec, childFieldOrder)...)
			}
		default:
			rec := st.Record(cfg.ID)
			if len(rec) == 0 {
				continue
			}
			out = append(out, recordRows(sectionTitles[cfg.ID], rec, fieldOrder[cfg.ID])...)
		}
	}
	return out
}

func recordRows(section string, rec domain.StepRecord, order []string) []Row {
	var out []Row
	seen := map[string]bool{}
	emit := func(key string) {
		if v := rec.Get(key); v != "" {
			out = append(out, Row{Section: section, Question: humanize(key), Answer: v})
		}
		seen[key] = true
	}
	for _, key := range order {
		emit(key)
	}
	var extra []string
	for key := range rec {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		emit(key)
	}
	return out
}

// humanize turns a snake_case field key into a title-cased question
// label, e.g. "nearest_police_station" becomes "Nearest Police Station".
func humanize(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
