// Package validate checks an operation batch for structural and semantic
// problems before it is applied to a document.
package validate

import (
	"fmt"

	"github.com/rogersnm/opbatch/internal/id"
	"github.com/rogersnm/opbatch/internal/model"
)

// Options tunes the semantic checks.
type Options struct {
	// PageWidthPt and PageHeightPt bound the page for the off-page warning.
	// Zero disables the check.
	PageWidthPt  float64
	PageHeightPt float64
}

// DefaultOptions matches a 16:9 slide.
var DefaultOptions = Options{PageWidthPt: 720, PageHeightPt: 405}

type Validator struct {
	opts Options
}

func New(opts Options) *Validator {
	return &Validator{opts: opts}
}

// Validate checks ops with DefaultOptions.
func Validate(ops []model.Operation) Report {
	return New(DefaultOptions).Validate(ops)
}

// Validate walks ops in order and reports every problem it recognizes.
// Unknown kinds are accepted. ops is not modified.
func (v *Validator) Validate(ops []model.Operation) Report {
	w := &walk{
		opts:    v.opts,
		keys:    OperationKeys(ops),
		created: make(map[string]int),
		deleted: make(map[string]int),
		report: Report{
			Errors:      []string{},
			Warnings:    []string{},
			ByOperation: make(map[string][]string),
		},
	}
	for i, op := range ops {
		w.visit(i, op)
	}
	w.report.Valid = len(w.report.Errors) == 0
	return w.report
}

// OperationKey is an operation's base key: its primary object ID, or
// "operation-N" (1-based) when it has none. Several operations can share a
// base key; OperationKeys disambiguates them.
func OperationKey(index int, op model.Operation) string {
	if pid := model.PrimaryID(op); pid != "" {
		return pid
	}
	return fmt.Sprintf("operation-%d", index+1)
}

// OperationKeys returns the key each operation's errors are filed under. The
// first operation with a base key keeps it; later ones get "key#N" with their
// 1-based position, which object IDs cannot contain.
func OperationKeys(ops []model.Operation) []string {
	keys := make([]string, len(ops))
	seen := make(map[string]bool, len(ops))
	for i, op := range ops {
		key := OperationKey(i, op)
		if seen[key] {
			key = fmt.Sprintf("%s#%d", key, i+1)
		}
		seen[key] = true
		keys[i] = key
	}
	return keys
}

type walk struct {
	opts    Options
	keys    []string
	report  Report
	created map[string]int // object ID -> 1-based index of creating operation
	deleted map[string]int

	index int
	op    model.Operation
}

func (w *walk) visit(i int, op model.Operation) {
	w.index, w.op = i, op

	if op.Payload == nil {
		w.errorf("operation is empty")
		return
	}

	w.checkStructure()
	w.checkReferences()
	w.checkCreated()
}

func (w *walk) prefix() string {
	return fmt.Sprintf("Operation %d (%s): ", w.index+1, w.op.Kind())
}

func (w *walk) errorf(format string, args ...any) {
	msg := w.prefix() + fmt.Sprintf(format, args...)
	w.report.Errors = append(w.report.Errors, msg)
	key := w.keys[w.index]
	w.report.ByOperation[key] = append(w.report.ByOperation[key], msg)
}

func (w *walk) warnf(format string, args ...any) {
	w.report.Warnings = append(w.report.Warnings, w.prefix()+fmt.Sprintf(format, args...))
}

// checkReferences warns about objects the batch uses before creating them or
// after deleting them. The live document may already hold them, so these are
// never errors.
func (w *walk) checkReferences() {
	for _, ref := range model.ReferencedIDs(w.op) {
		if n, ok := w.deleted[ref]; ok {
			w.warnf("references object %q deleted by operation %d", ref, n)
			continue
		}
		if _, ok := w.created[ref]; !ok {
			w.warnf("references object %q not created earlier in this batch", ref)
		}
	}
	for _, del := range model.DeletedIDs(w.op) {
		delete(w.created, del)
		w.deleted[del] = w.index + 1
	}
}

func (w *walk) checkCreated() {
	for _, oid := range model.CreatedIDs(w.op) {
		if err := id.Validate(oid); err != nil {
			w.errorf("object ID %q is invalid: %v", oid, err)
		}
		if n, ok := w.created[oid]; ok {
			w.errorf("object ID %q is already created by operation %d", oid, n)
			continue
		}
		w.created[oid] = w.index + 1
		delete(w.deleted, oid)
	}
}
