package handlers

import (
	"net/http"

	"github.com/thandol/j101-generator/internal/domain"
)

// devAutofill seeds the session with a complete sample application and
// jumps straight to the summary. Development only; the route is not
// registered unless Config.DevAutofill is set.
func (h *Handler) devAutofill(w http.ResponseWriter, r *http.Request) {
	sid, st, ok := h.loadState(w, r)
	if !ok {
		return
	}

	st.SetRecord(domain.StepApplicant, domain.StepRecord{
		"full_name":              "Mary Applicant",
		"id_number":              "8501155180085",
		"date_of_birth":          "1985-01-15",
		"residential_address":    "123 Sample Street, Suburbville",
		"postal_code":            "7925",
		"work_address":           "456 Business Park, Century City",
		"contact_phone":          "0821234567",
		"nearest_police_station": "Cape Town Central",
	})
	st.SetRecord(domain.StepRespondent, domain.StepRecord{
		"full_name":     "John Respondent",
		"id_number":     "8203205190087",
		"date_of_birth": "1982-03-20",
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
		"fixed_property":   "1200000.00",
		"investments":      "50000.00",
		"savings":          "15000.00",
		"shares":           "0.00",
		"motor_vehicles":   "85000.00",
		"gross_salary":     "25000.00",
		"other_income_1":   "500.00",
		"tax":              "4500.00",
		"medical_aid":      "1800.00",
		"pension":          "2000.00",
		"other_deductions": "150.00",
	})
	st.SetRecord(domain.StepFinancials, domain.StepRecord{
		"legally_liable_reason":    "He is the biological father of both children and is legally required to contribute towards their upbringing.",
		"child_in_care_reason":     "The children have lived with me exclusively since their respective births. I am their primary caregiver.",
		"date_not_supported":       "2024-01-01",
		"payment_day":              "1",
		"payment_made_to":          "The Applicant, M. Applicant",
		"other_contributions_text": "50% of school fees and any medical expenses not covered by the medical aid.",

		"self_lodging": "4000.00", "child_lodging": "4000.00",
		"self_groceries": "2000.00", "child_groceries": "2500.00",
		"self_utilities": "800.00", "child_utilities": "800.00",
		"self_rates_taxes": "400.00", "child_rates_taxes": "400.00",
		"self_laundry": "150.00", "child_laundry": "150.00",
		"self_telephone": "300.00", "child_telephone": "100.00",
		"self_clothing": "500.00", "child_clothing": "800.00",
		"child_school_uniforms": "1200.00",
		"self_transport_public": "0.00", "child_transport_public": "450.00",
		"self_fuel": "1000.00", "child_fuel": "500.00",
		"self_car_maintenance": "250.00", "child_car_maintenance": "250.00",
		"self_car_insurance": "700.00", "child_car_insurance": "300.00",
		"child_school_fees": "3000.00",
		"child_stationery":  "350.00",
		"child_extramural":  "750.00",
		"self_medical": "200.00", "child_medical": "400.00",
		"self_medication": "100.00", "child_medication": "150.00",
		"self_entertainment": "400.00", "child_entertainment": "500.00",

		"total_maintenance_claimed": "8000.00",
	})
	st.Current = ""

	if err := h.store.Save(r.Context(), sid, st); err != nil {
		h.log.Error("save session", "err", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/summary", http.StatusSeeOther)
}
