package wizard_test

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thandol/j101-generator/internal/domain"
	"github.com/thandol/j101-generator/internal/wizard"
)

func validators() map[domain.StepID]wizard.Validator {
	return wizard.Validators(testNow)
}

func emptyState() *domain.WizardState {
	return domain.NewWizardState(domain.DefaultPipeline())
}

func TestApplicantDOBMustMatchID(t *testing.T) {
	form := applicantForm()
	form.Set("date_of_birth", "1986-02-16") // ID encodes 1985-01-15

	_, errs := validators()[domain.StepApplicant](form, emptyState())
	assert.Contains(t, errs, "date_of_birth")

	form.Set("date_of_birth", "1985-01-15")
	data, errs := validators()[domain.StepApplicant](form, emptyState())
	require.False(t, errs.Any(), "unexpected errors: %v", errs)
	assert.Equal(t, "1985-01-15", data.Record.Get("date_of_birth"))
}

func TestApplicantIDTooLong(t *testing.T) {
	form := applicantForm()
	form.Set("id_number", "85011551800851") // 14 digits
	_, errs := validators()[domain.StepApplicant](form, emptyState())
	assert.Contains(t, errs, "id_number")
}

func TestRespondentRejectsApplicantID(t *testing.T) {
	st := emptyState()
	st.SetRecord(domain.StepApplicant, domain.StepRecord{"id_number": "8501155180085"})

	form := url.Values{
		"full_name":    {"John Respondent"},
		"home_address": {"789 Other Road"},
		"id_number":    {"8501155180085"},
	}
	_, errs := validators()[domain.StepRespondent](form, st)
	assert.Contains(t, errs, "id_number")

	form.Set("id_number", "8203205190087")
	_, errs = validators()[domain.StepRespondent](form, st)
	assert.False(t, errs.Any(), "unexpected errors: %v", errs)
}

func TestChildValidator(t *testing.T) {
	form := url.Values{
		"child_details-0-full_name":     {"Thabo Junior"},
		"child_details-0-date_of_birth": {"2015-06-10"},
		// flagged for deletion: purged
		"child_details-1-full_name":     {"Deleted Child"},
		"child_details-1-date_of_birth": {"2016-01-01"},
		"child_details-1-DELETE":        {"on"},
		// entirely empty: purged
		"child_details-2-full_name": {""},
		// gap at 3, valid entry at 4
		"child_details-4-full_name":     {"Jane"},
		"child_details-4-date_of_birth": {"2018-11-22"},
	}
	data, errs := validators()[domain.StepChildren](form, emptyState())
	require.False(t, errs.Any(), "unexpected errors: %v", errs)
	require.Len(t, data.List, 2)
	assert.Equal(t, "Thabo Junior", data.List[0].Get("full_name"))
	assert.Equal(t, "Jane", data.List[1].Get("full_name"))
}

func TestChildDOBNotInFuture(t *testing.T) {
	form := url.Values{
		"child_details-0-full_name":     {"Future Kid"},
		"child_details-0-date_of_birth": {"2030-01-01"}, // after testNow (2024-07-01)
	}
	_, errs := validators()[domain.StepChildren](form, emptyState())
	assert.Contains(t, errs, "child_details-0-date_of_birth")
}

func TestChildFormSetBound(t *testing.T) {
	form := url.Values{}
	form.Set(fmt.Sprintf("child_details-%d-full_name", wizard.MaxChildren-1), "Last Parsed")
	form.Set(fmt.Sprintf("child_details-%d-date_of_birth", wizard.MaxChildren-1), "2015-06-10")
	form.Set(fmt.Sprintf("child_details-%d-full_name", wizard.MaxChildren), "Past The Bound")
	form.Set(fmt.Sprintf("child_details-%d-date_of_birth", wizard.MaxChildren), "2016-01-01")

	data, errs := validators()[domain.StepChildren](form, emptyState())
	require.False(t, errs.Any(), "unexpected errors: %v", errs)
	require.Len(t, data.List, 1)
	assert.Equal(t, "Last Parsed", data.List[0].Get("full_name"))
}

func TestChildEmptyFormSetIsValid(t *testing.T) {
	data, errs := validators()[domain.StepChildren](url.Values{}, emptyState())
	require.False(t, errs.Any())
	assert.Empty(t, data.List)
}

func TestIncomeAssetsRejectsNegative(t *testing.T) {
	form := url.Values{"gross_salary": {"-1.00"}}
	_, errs := validators()[domain.StepIncome](form, emptyState())
	assert.Contains(t, errs, "gross_salary")

	form = url.Values{"gross_salary": {"25000.00"}, "tax": {"4500"}}
	data, errs := validators()[domain.StepIncome](form, emptyState())
	require.False(t, errs.Any())
	assert.Equal(t, "25000.00", data.Record.Get("gross_salary"))
	assert.Equal(t, "4500.00", data.Record.Get("tax")) // normalized to cents
}

func TestFinancialsValidation(t *testing.T) {
	form := url.Values{
		"legally_liable_reason": {"Biological father."},
		"child_in_care_reason":  {"Primary caregiver."},
	}
	_, errs := validators()[domain.StepFinancials](form, emptyState())
	assert.Contains(t, errs, "total_maintenance_claimed")

	form.Set("total_maintenance_claimed", "-10")
	_, errs = validators()[domain.StepFinancials](form, emptyState())
	assert.Contains(t, errs, "total_maintenance_claimed")

	form.Set("total_maintenance_claimed", "3000.00")
	form.Set("payment_day", "40")
	_, errs = validators()[domain.StepFinancials](form, emptyState())
	assert.Contains(t, errs, "payment_day")

	form.Set("payment_day", "1")
	form.Set("self_lodging", "4000.00")
	form.Set("child_lodging", "4000.00")
	data, errs := validators()[domain.StepFinancials](form, emptyState())
	require.False(t, errs.Any(), "unexpected errors: %v", errs)
	assert.Equal(t, "3000.00", data.Record.Get("total_maintenance_claimed"))
	assert.Equal(t, "4000.00", data.Record.Get("self_lodging"))
}
