// Package wizard implements the multi-step intake state machine: which step
// is active, which are completed, and which may be reached by direct
// navigation. The navigator knows nothing about individual validation
// rules; it consumes a Validator per step and an accepted/rejected signal.
package wizard

import (
	"fmt"
	"net/url"

	"github.com/thandol/j101-generator/internal/domain"
)

// FieldErrors maps an offending field name to its validation message.
type FieldErrors map[string]string

// Any reports whether at least one error was recorded.
func (e FieldErrors) Any() bool { return len(e) > 0 }

// StepData is a validator's accepted output: a single record or, for
// repeatable steps, an ordered entry list (exactly one of the two is set,
// per the step's Kind).
type StepData struct {
	Record domain.StepRecord
	List   []domain.StepRecord
}

// Validator checks one step's submitted form input against the state
// accumulated so far. A non-empty FieldErrors rejects the submission.
type Validator func(form url.Values, st *domain.WizardState) (StepData, FieldErrors)

// Navigator drives progression through a fixed step pipeline.
type Navigator struct {
	pipeline   []domain.StepConfig
	validators map[domain.StepID]Validator
}

// NewNavigator builds a navigator for the given pipeline. Every pipeline
// step must have a validator.
func NewNavigator(pipeline []domain.StepConfig, validators map[domain.StepID]Validator) (*Navigator, error) {
	if len(pipeline) == 0 {
		return nil, fmt.Errorf("wizard: empty pipeline")
	}
	for _, sc := range pipeline {
		if validators[sc.ID] == nil {
			return nil, fmt.Errorf("wizard: step %q has no validator", sc.ID)
		}
	}
	return &Navigator{pipeline: pipeline, validators: validators}, nil
}

// Pipeline returns the configured steps in order.
func (n *Navigator) Pipeline() []domain.StepConfig { return n.pipeline }

// First returns the first step of the pipeline.
func (n *Navigator) First() domain.StepID { return n.pipeline[0].ID }

// Index returns a step's pipeline position, or -1 for unknown IDs.
func (n *Navigator) Index(id domain.StepID) int {
	for i, sc := range n.pipeline {
		if sc.ID == id {
			return i
		}
	}
	return -1
}

// Step looks up a step's configuration.
func (n *Navigator) Step(id domain.StepID) (domain.StepConfig, bool) {
	i := n.Index(id)
	if i < 0 {
		return domain.StepConfig{}, false
	}
	return n.pipeline[i], true
}

// furthestCompleted is the highest pipeline index with stored data, or -1.
func (n *Navigator) furthestCompleted(st *domain.WizardState) int {
	max := -1
	for i, sc := range n.pipeline {
		if st.Completed(sc.ID) && i > max {
			max = i
		}
	}
	return max
}

// Resolve decides which step a direct-navigation request lands on. A user
// may revisit any completed step or the single next unreached one; a
// request past that bound is redirected to the furthest legally reachable
// step rather than rejected.
func (n *Navigator) Resolve(st *domain.WizardState, requested domain.StepID) domain.StepID {
	idx := n.Index(requested)
	if idx < 0 {
		return n.currentOrFirst(st)
	}
	bound := n.furthestCompleted(st) + 1
	if idx <= bound {
		return requested
	}
	if bound < len(n.pipeline) {
		return n.pipeline[bound].ID
	}
	return n.currentOrFirst(st)
}

func (n *Navigator) currentOrFirst(st *domain.WizardState) domain.StepID {
	if n.Index(st.Current) >= 0 {
		return st.Current
	}
	return n.First()
}

// Submit runs one transition: validate step id's form input, and on
// acceptance store the data and advance. On rejection the state is left
// untouched and the caller stays on the same step. done is true once the
// final pipeline step has validated, i.e. the terminal state is reached.
func (n *Navigator) Submit(st *domain.WizardState, id domain.StepID, form url.Values) (next domain.StepID, done bool, errs FieldErrors) {
	idx := n.Index(id)
	if idx < 0 {
		return n.currentOrFirst(st), false, FieldErrors{"form_step": "unknown step"}
	}

	data, errs := n.validators[id](form, st)
	if errs.Any() {
		return id, false, errs
	}

	switch n.pipeline[idx].Kind {
	case domain.StepList:
		st.SetList(id, data.List)
	default:
		st.SetRecord(id, data.Record)
	}

	if idx+1 < len(n.pipeline) {
		next = n.pipeline[idx+1].ID
		st.Current = next
		return next, false, nil
	}
	st.Current = ""
	return "", true, nil
}
