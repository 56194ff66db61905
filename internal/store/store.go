package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mitchellh/copystructure"
	"github.com/rogersnm/opbatch/internal/logging"
	"github.com/rogersnm/opbatch/internal/model"
	"github.com/rogersnm/opbatch/internal/validate"
	"github.com/rs/zerolog"
)

var (
	ErrIndexOutOfRange = errors.New("operation index out of range")
	ErrUnknownState    = errors.New("unknown validation state")
)

// Source names the view a selection came from.
type Source string

const (
	SourceOperation Source = "operation"
	SourceElement   Source = "element"
)

// Selection is the highlighted operation and its rendered element. An empty
// string means nothing is selected.
type Selection struct {
	OperationID string `json:"selectedOperationId"`
	ElementID   string `json:"selectedElementId"`
}

// Snapshot is a consistent copy of the whole session state.
type Snapshot struct {
	SessionID        string              `json:"sessionId"`
	Operations       []model.Operation   `json:"operations"`
	ValidationErrors map[string][]string `json:"validationErrors"`
	GlobalState      validate.State      `json:"globalValidationState"`
	Selection        Selection           `json:"selection"`
}

// Session implements Store in memory. Create one per editing session.
type Session struct {
	id  string
	log zerolog.Logger

	mu    sync.RWMutex
	ops   []model.Operation
	errs  map[string][]string
	state validate.State
	sel   Selection
}

// compile-time check
var _ Store = (*Session)(nil)

// New returns an empty, valid session with nothing selected.
func New() *Session {
	sid := uuid.NewString()
	return &Session{
		id:    sid,
		log:   logging.GetLogger("store").With().Str("session", sid).Logger(),
		ops:   []model.Operation{},
		errs:  map[string][]string{},
		state: validate.StateValid,
	}
}

func (s *Session) ID() string { return s.id }

// AddOperation appends op and returns its index. Validation state is left
// alone; callers revalidate when they choose to.
func (s *Session) AddOperation(op model.Operation) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, cloneOperation(op))
	s.log.Debug().Str("kind", string(op.Kind())).Int("count", len(s.ops)).Msg("Operation added")
	return len(s.ops) - 1
}

// AddRequest is AddOperation under the document API's name for an operation.
func (s *Session) AddRequest(op model.Operation) int {
	return s.AddOperation(op)
}

func (s *Session) UpdateOperation(index int, op model.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.ops[index] = cloneOperation(op)
	s.log.Debug().Int("index", index).Str("kind", string(op.Kind())).Msg("Operation updated")
	return nil
}

func (s *Session) RemoveOperation(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.ops = append(s.ops[:index:index], s.ops[index+1:]...)
	s.log.Debug().Int("index", index).Int("count", len(s.ops)).Msg("Operation removed")
	return nil
}

// ImportOperations replaces the collection. Selection is kept.
func (s *Session) ImportOperations(ops []model.Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = cloneOperations(ops)
	s.log.Debug().Int("count", len(s.ops)).Msg("Operations imported")
}

// ClearOperations empties the collection, drops validation results and
// clears the selection, whose identifiers would otherwise dangle.
func (s *Session) ClearOperations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = []model.Operation{}
	s.errs = map[string][]string{}
	s.state = validate.StateValid
	s.sel = Selection{}
	s.log.Debug().Msg("Operations cleared")
}

// SetValidationErrors replaces the per-operation errors. The global state is
// not derived from them.
func (s *Session) SetValidationErrors(errs map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = cloneErrors(errs)
}

func (s *Session) SetGlobalValidationState(state validate.State) error {
	if _, ok := validate.ParseState(string(state)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return nil
}

// Revalidate validates the current operations with v, or the default
// validator when v is nil, then stores the per-operation errors and the
// derived state. These are two separate transitions.
func (s *Session) Revalidate(v *validate.Validator) validate.Report {
	if v == nil {
		v = validate.New(validate.DefaultOptions)
	}
	report := v.Validate(s.Operations())
	s.SetValidationErrors(report.ByOperation)
	// State() only yields known states.
	_ = s.SetGlobalValidationState(report.State())
	s.log.Debug().
		Str("state", string(report.State())).
		Int("errors", len(report.Errors)).
		Int("warnings", len(report.Warnings)).
		Msg("Revalidated")
	return report
}

// SyncSelection selects id in both the operation list and the preview.
// source is recorded for logging only.
func (s *Session) SyncSelection(source Source, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = Selection{OperationID: id, ElementID: id}
	s.log.Trace().Str("source", string(source)).Str("id", id).Msg("Selection synced")
}

// SelectByIDs sets the two selection fields independently, for highlighting
// an element other than the operation's own.
func (s *Session) SelectByIDs(operationID, elementID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = Selection{OperationID: operationID, ElementID: elementID}
}

func (s *Session) Operations() []model.Operation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOperations(s.ops)
}

func (s *Session) Operation(index int) (model.Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkIndex(index); err != nil {
		return model.Operation{}, err
	}
	return cloneOperation(s.ops[index]), nil
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ops)
}

func (s *Session) ValidationErrors() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneErrors(s.errs)
}

func (s *Session) GlobalValidationState() validate.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		SessionID:        s.id,
		Operations:       cloneOperations(s.ops),
		ValidationErrors: cloneErrors(s.errs),
		GlobalState:      s.state,
		Selection:        s.sel,
	}
}

// OperationFor finds the operation to highlight for objectID: the first
// operation keyed by it, else the first one creating or referencing it.
func (s *Session) OperationFor(objectID string) (int, model.Operation, bool) {
	if objectID == "" {
		return -1, model.Operation{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := validate.OperationKeys(s.ops)
	for i, op := range s.ops {
		if keys[i] == objectID {
			return i, cloneOperation(op), true
		}
	}
	for i, op := range s.ops {
		if contains(model.CreatedIDs(op), objectID) || contains(model.ReferencedIDs(op), objectID) {
			return i, cloneOperation(op), true
		}
	}
	return -1, model.Operation{}, false
}

// checkIndex must be called with s.mu held.
func (s *Session) checkIndex(index int) error {
	if index < 0 || index >= len(s.ops) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.ops))
	}
	return nil
}

func cloneOperations(ops []model.Operation) []model.Operation {
	out := make([]model.Operation, len(ops))
	for i, op := range ops {
		out[i] = cloneOperation(op)
	}
	return out
}

// cloneOperation deep-copies op so callers never share payloads with the
// session.
func cloneOperation(op model.Operation) model.Operation {
	if op.Payload == nil {
		return op
	}
	c, err := copystructure.Copy(op)
	if err != nil {
		return op
	}
	return c.(model.Operation)
}

func cloneErrors(errs map[string][]string) map[string][]string {
	out := make(map[string][]string, len(errs))
	for k, v := range errs {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
