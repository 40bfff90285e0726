// Package domain holds the wizard's canonical data model: the ordered step
// pipeline and the session-scoped WizardState that accumulates validated
// answers until the J101 form is generated.
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StepID names one stage of the intake pipeline.
type StepID string

const (
	StepApplicant  StepID = "applicant_details"
	StepRespondent StepID = "respondent_details"
	StepChildren   StepID = "child_details"
	StepIncome     StepID = "applicant_income_assets"
	StepFinancials StepID = "financials"
)

// StepKind discriminates single-record steps from repeatable-entry steps.
type StepKind int

const (
	StepSingle StepKind = iota // one StepRecord per step
	StepList                   // ordered sequence of StepRecords (children)
)

// StepConfig describes one pipeline entry. The pipeline is passed explicitly
// to the navigator at construction; there is no process-wide registry.
type StepConfig struct {
	ID    StepID
	Title string
	Kind  StepKind
}

// DefaultPipeline is the fixed J101 intake order.
func DefaultPipeline() []StepConfig {
	return []StepConfig{
		{ID: StepApplicant, Title: "Applicant", Kind: StepSingle},
		{ID: StepRespondent, Title: "Respondent", Kind: StepSingle},
		{ID: StepChildren, Title: "Children", Kind: StepList},
		{ID: StepIncome, Title: "Your Finances", Kind: StepSingle},
		{ID: StepFinancials, Title: "Claim Details", Kind: StepSingle},
	}
}

// StepRecord maps field names to values in their serialized form: dates as
// ISO-8601 strings, decimal amounts as plain decimal strings. Parsing back
// happens on demand via the typed accessors below.
type StepRecord map[string]string

// Get returns the trimmed value for key, or "" when absent.
func (r StepRecord) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// Date parses an ISO-8601 date field. ok is false for absent or malformed
// values.
func (r StepRecord) Date(key string) (time.Time, bool) {
	v := r.Get(key)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Amount parses a decimal money field. Absent or malformed values yield
// zero, matching the "missing monetary inputs default to zero" rule.
func (r StepRecord) Amount(key string) decimal.Decimal {
	v := r.Get(key)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// WizardState is the session-scoped aggregate of all validated step data.
// A step's key is present in Records (or Lists, for StepList steps) only
// after that step's validation has succeeded; the set of present keys is
// the completed-step set used for navigation gating.
type WizardState struct {
	Records map[StepID]StepRecord   `json:"records,omitempty"`
	Lists   map[StepID][]StepRecord `json:"lists,omitempty"`
	Current StepID                  `json:"current,omitempty"`
}

// NewWizardState returns an empty state positioned on the first step.
func NewWizardState(pipeline []StepConfig) *WizardState {
	st := &WizardState{
		Records: map[StepID]StepRecord{},
		Lists:   map[StepID][]StepRecord{},
	}
	if len(pipeline) > 0 {
		st.Current = pipeline[0].ID
	}
	return st
}

// Completed reports whether data for the given step has been stored.
func (st *WizardState) Completed(id StepID) bool {
	if _, ok := st.Records[id]; ok {
		return true
	}
	_, ok := st.Lists[id]
	return ok
}

// Empty reports whether no step has stored any data yet.
func (st *WizardState) Empty() bool {
	return len(st.Records) == 0 && len(st.Lists) == 0
}

// SetRecord stores a single-record step's validated data, replacing any
// prior submission of the same step.
func (st *WizardState) SetRecord(id StepID, rec StepRecord) {
	if st.Records == nil {
		st.Records = map[StepID]StepRecord{}
	}
	st.Records[id] = rec
}

// SetList stores a list step's validated entries. Deletion-flagged and
// empty entries must already have been purged by the validator.
func (st *WizardState) SetList(id StepID, list []StepRecord) {
	if st.Lists == nil {
		st.Lists = map[StepID][]StepRecord{}
	}
	if list == nil {
		list = []StepRecord{}
	}
	st.Lists[id] = list
}

// Record returns the stored record for a single-record step, or an empty
// one when the step has not completed.
func (st *WizardState) Record(id StepID) StepRecord {
	if rec, ok := st.Records[id]; ok {
		return rec
	}
	return StepRecord{}
}

// List returns the stored entries for a list step; nil when absent.
func (st *WizardState) List(id StepID) []StepRecord {
	return st.Lists[id]
}

// Marshal serializes the state for session storage.
func (st *WizardState) Marshal() ([]byte, error) {
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal wizard state: %w", err)
	}
	return b, nil
}

// UnmarshalWizardState parses a stored session blob.
func UnmarshalWizardState(b []byte) (*WizardState, error) {
	st := &WizardState{}
	if err := json.Unmarshal(b, st); err != nil {
		return nil, fmt.Errorf("unmarshal wizard state: %w", err)
	}
	if st.Records == nil {
		st.Records = map[StepID]StepRecord{}
	}
	if st.Lists == nil {
		st.Lists = map[StepID][]StepRecord{}
	}
	return st, nil
}
