package store

import (
	"github.com/rogersnm/opbatch/internal/model"
	"github.com/rogersnm/opbatch/internal/validate"
)

// Store is the editing-session state: the pending operations, their
// validation results and the current selection. Each call is atomic on its
// own; a sequence of calls (ImportOperations then SetGlobalValidationState,
// say) is not a transaction and other callers may observe the states between.
type Store interface {
	// Operations
	AddOperation(op model.Operation) int
	AddRequest(op model.Operation) int
	UpdateOperation(index int, op model.Operation) error
	RemoveOperation(index int) error
	ImportOperations(ops []model.Operation)
	ClearOperations()

	// Validation
	SetValidationErrors(errs map[string][]string)
	SetGlobalValidationState(state validate.State) error
	Revalidate(v *validate.Validator) validate.Report

	// Selection
	SyncSelection(source Source, id string)
	SelectByIDs(operationID, elementID string)

	// Reads
	Operations() []model.Operation
	Operation(index int) (model.Operation, error)
	Len() int
	ValidationErrors() map[string][]string
	GlobalValidationState() validate.State
	Selection() Selection
	Snapshot() Snapshot
	Search(query string) []SearchResult
	OperationFor(objectID string) (int, model.Operation, bool)
}
