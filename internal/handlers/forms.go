package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/thandol/j101-generator/internal/domain"
	"github.com/thandol/j101-generator/internal/templates"
	"github.com/thandol/j101-generator/internal/wizard"
)

// fieldSpec declares one input of a step form: its field key, the
// question shown to the applicant, and how it renders.
type fieldSpec struct {
	name     string
	label    string
	typ      string // text, date, number, textarea
	help     string
	required bool
}

var applicantFields = []fieldSpec{
	{name: "full_name", label: "What is your full name?", typ: "text", required: true},
	{name: "id_number", label: "What is your South African ID number?", typ: "text", required: true},
	{name: "date_of_birth", label: "What is your date of birth?", typ: "date",
		help: "Must match the date encoded in your ID number."},
	{name: "residential_address", label: "What is your current residential address?", typ: "textarea",
		help: "e.g., 123 Sample Street, Suburbville, Cape Town", required: true},
	{name: "postal_code", label: "Postal Code", typ: "text"},
	{name: "work_address", label: "What is your work address?", typ: "textarea"},
	{name: "contact_phone", label: "What is your best contact phone number?", typ: "text", required: true},
	{name: "work_phone", label: "What is your work phone number (if different)?", typ: "text"},
	{name: "nearest_police_station", label: "What is the nearest police station to you?", typ: "text"},
}

var respondentFields = []fieldSpec{
	{name: "full_name", label: "What is the full name of the other parent (the 'defendant')?", typ: "text", required: true},
	{name: "id_number", label: "What is their ID number (if you know it)?", typ: "text"},
	{name: "date_of_birth", label: "What is their date of birth (if you know it)?", typ: "date"},
	{name: "home_address", label: "What is their home address?", typ: "textarea",
		help: "A court official may need to deliver ('serve') documents here. Be as accurate as possible.", required: true},
	{name: "postal_code", label: "Postal Code", typ: "text"},
	{name: "work_address", label: "What is their work address (if known)?", typ: "textarea"},
	{name: "contact_phone", label: "What is their phone number (if known)?", typ: "text"},
	{name: "work_phone", label: "What is their work phone number (if known)?", typ: "text"},
}

var incomeFields = []fieldSpec{
	{name: "fixed_property", label: "Value of Fixed Property (e.g., house)", typ: "number"},
	{name: "investments", label: "Value of Investments (e.g., unit trusts)", typ: "number"},
	{name: "savings", label: "Value of Savings", typ: "number"},
	{name: "shares", label: "Value of Shares", typ: "number"},
	{name: "motor_vehicles", label: "Value of Motor Vehicle(s)", typ: "number"},
	{name: "gross_salary", label: "Your Monthly Gross Salary (before deductions)", typ: "number"},
	{name: "other_income_1", label: "Other Monthly Income (if any)", typ: "number"},
	{name: "tax", label: "Monthly Tax Deduction", typ: "number"},
	{name: "medical_aid", label: "Monthly Medical Aid Deduction", typ: "number"},
	{name: "pension", label: "Monthly Pension/Provident Fund Deduction", typ: "number"},
	{name: "other_deductions", label: "Other Monthly Deductions", typ: "number"},
}

var financialFields = buildFinancialFields()

func buildFinancialFields() []fieldSpec {
	fields := []fieldSpec{
		{name: "legally_liable_reason", label: "Why is the other parent legally required to maintain the child(ren)?",
			typ: "textarea", help: "e.g., 'He is the biological father.'", required: true},
		{name: "child_in_care_reason", label: "Why are the children under your care?",
			typ: "textarea", help: "e.g., 'The children have lived with me exclusively since birth.'", required: true},
		{name: "date_not_supported", label: "Since what date has the defendant not supported the child(ren)?", typ: "date"},
		{name: "first_payment_date", label: "When should the first payment be made?", typ: "date"},
		{name: "payment_day", label: "Payment day of the month?", typ: "text"},
		{name: "payment_in_favour_of", label: "In whose favour should the order be made?", typ: "text"},
		{name: "payment_made_to", label: "Who should the payment be made to?", typ: "text",
			help: "e.g., Your bank account details."},
		{name: "other_contributions_text", label: "Other requested contributions?", typ: "textarea",
			help: "e.g., '50% of school fees and uncovered medical expenses.'"},
	}
	for _, row := range domain.ExpenseRowDefs() {
		label := expenseLabel(row.Name)
		if row.SelfKey != "" {
			fields = append(fields, fieldSpec{name: row.SelfKey, label: label + " (Your Share)", typ: "number"})
		}
		fields = append(fields, fieldSpec{name: row.ChildKey, label: label + " (Children's Share)", typ: "number"})
	}
	fields = append(fields, fieldSpec{
		name:     "total_maintenance_claimed",
		label:    "Total Monthly Maintenance You Are Claiming (R)",
		typ:      "number",
		help:     "Based on the expenses above, enter the total amount you are asking the other parent to contribute.",
		required: true,
	})
	return fields
}

var stepFields = map[domain.StepID][]fieldSpec{
	domain.StepApplicant:  applicantFields,
	domain.StepRespondent: respondentFields,
	domain.StepIncome:     incomeFields,
	domain.StepFinancials: financialFields,
}

var stepIntros = map[domain.StepID]string{
	domain.StepApplicant:  "Tell us about yourself. This information identifies you as the applicant on the form.",
	domain.StepRespondent: "Tell us about the other parent. The court needs enough detail to contact them.",
	domain.StepChildren:   "Add each child you are claiming maintenance for.",
	domain.StepIncome:     "Your assets, income and salary deductions. Leave anything that does not apply blank.",
	domain.StepFinancials: "The claim itself: why the other parent is liable, and your monthly expenses.",
}

func expenseLabel(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// buildStepView assembles the view model for a step page. When a rejected
// submission is being re-rendered, form carries the submitted values so
// the applicant's input is not lost; otherwise values come from the
// stored state.
func buildStepView(nav *wizard.Navigator, st *domain.WizardState, id domain.StepID, form url.Values, errs wizard.FieldErrors) templates.StepView {
	cfg, _ := nav.Step(id)
	view := templates.StepView{
		Title:  cfg.Title,
		StepID: string(id),
		Intro:  stepIntros[id],
		IsList: cfg.Kind == domain.StepList,
		Nav:    buildNav(nav, st, id),
	}

	if view.IsList {
		view.Children = buildChildRows(st, form, errs)
		return view
	}

	rec := st.Record(id)
	value := func(name string) string {
		if form != nil {
			return form.Get(name)
		}
		return rec.Get(name)
	}
	for _, fs := range stepFields[id] {
		view.Fields = append(view.Fields, templates.Field{
			Name:     fs.name,
			Label:    fs.label,
			Type:     fs.typ,
			Value:    value(fs.name),
			Help:     fs.help,
			Error:    errs[fs.name],
			Required: fs.required,
		})
	}
	return view
}

// buildNav marks each pipeline step's reachability the same way direct
// navigation resolves it, so the strip never links somewhere a click
// would bounce away from.
func buildNav(nav *wizard.Navigator, st *domain.WizardState, active domain.StepID) []templates.NavItem {
	var items []templates.NavItem
	for _, sc := range nav.Pipeline() {
		items = append(items, templates.NavItem{
			ID:        string(sc.ID),
			Title:     sc.Title,
			Active:    sc.ID == active,
			Completed: st.Completed(sc.ID),
			Reachable: nav.Resolve(st, sc.ID) == sc.ID,
		})
	}
	return items
}

// extraChildRows is the number of blank rows offered beyond stored
// entries.
const extraChildRows = 1

func buildChildRows(st *domain.WizardState, form url.Values, errs wizard.FieldErrors) []templates.ChildRow {
	var rows []templates.ChildRow
	if form != nil {
		// Re-render the submitted formset as-is, plus one blank row.
		last := -1
		for i := 0; i < wizard.MaxChildren; i++ {
			prefix := fmt.Sprintf("%s-%d-", domain.StepChildren, i)
			if form.Get(prefix+"full_name") != "" || form.Get(prefix+"date_of_birth") != "" {
				last = i
			}
		}
		for i := 0; i <= last+extraChildRows; i++ {
			prefix := fmt.Sprintf("%s-%d-", domain.StepChildren, i)
			rows = append(rows, templates.ChildRow{
				Index:    i,
				Num:      i + 1,
				Name:     form.Get(prefix + "full_name"),
				DOB:      form.Get(prefix + "date_of_birth"),
				NameErr:  errs[prefix+"full_name"],
				DOBErr:   errs[prefix+"date_of_birth"],
				Existing: i <= last,
			})
		}
		return rows
	}

	stored := st.List(domain.StepChildren)
	for i, rec := range stored {
		rows = append(rows, templates.ChildRow{
			Index:    i,
			Num:      i + 1,
			Name:     rec.Get("full_name"),
			DOB:      rec.Get("date_of_birth"),
			Existing: true,
		})
	}
	for i := 0; i < extraChildRows; i++ {
		idx := len(stored) + i
		rows = append(rows, templates.ChildRow{Index: idx, Num: idx + 1})
	}
	return rows
}
