package validate

import (
	"errors"

	"go.uber.org/multierr"
)

// State is the batch-wide validation status shown to the user.
type State string

const (
	StateValid   State = "valid"
	StateWarning State = "warning"
	StateInvalid State = "invalid"
)

// ParseState converts s to a State.
func ParseState(s string) (State, bool) {
	switch State(s) {
	case StateValid, StateWarning, StateInvalid:
		return State(s), true
	}
	return "", false
}

// Report is the result of validating an operation collection. Valid is true
// iff Errors is empty; warnings never affect it.
type Report struct {
	Valid    bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	// ByOperation groups errors by operation key (see OperationKeys).
	ByOperation map[string][]string `json:"-"`
}

// State derives the batch status: invalid with errors, warning with warnings
// only, valid otherwise.
func (r Report) State() State {
	switch {
	case len(r.Errors) > 0:
		return StateInvalid
	case len(r.Warnings) > 0:
		return StateWarning
	default:
		return StateValid
	}
}

// Err combines the report's errors, or returns nil for a valid report.
func (r Report) Err() error {
	var err error
	for _, msg := range r.Errors {
		err = multierr.Append(err, errors.New(msg))
	}
	return err
}
