package validate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rogersnm/opbatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shapeWithSize(objectID string, width, height float64) model.Operation {
	return model.New(&model.CreateShape{
		ObjectID:  objectID,
		ShapeType: "RECTANGLE",
		ElementProperties: &model.ElementProperties{
			PageObjectID: "page_1",
			Size: &model.Size{
				Width:  &model.Dimension{Magnitude: width, Unit: model.UnitPT},
				Height: &model.Dimension{Magnitude: height, Unit: model.UnitPT},
			},
		},
	})
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestValidate_Empty(t *testing.T) {
	r := Validate(nil)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, StateValid, r.State())
	assert.NoError(t, r.Err())
}

func TestValidate_NegativeWidth(t *testing.T) {
	r := Validate([]model.Operation{shapeWithSize("box_1", -1, 100)})
	assert.False(t, r.Valid)
	assert.Contains(t, r.Errors, "Operation 1 (createShape): Width must be positive")
	assert.Equal(t, StateInvalid, r.State())
	assert.Error(t, r.Err())
}

func TestValidate_NegativeHeight(t *testing.T) {
	r := Validate([]model.Operation{shapeWithSize("box_1", 10, -1)})
	assert.False(t, r.Valid)
	assert.True(t, containsSubstring(r.Errors, "Height must be positive"))
}

func TestValidate_ZeroSizeAccepted(t *testing.T) {
	r := Validate([]model.Operation{shapeWithSize("box_1", 0, 0)})
	assert.True(t, r.Valid, r.Errors)
	assert.False(t, containsSubstring(r.Errors, "must be positive"))
}

func TestValidate_NegativeSizeOnEveryElementKind(t *testing.T) {
	ep := &model.ElementProperties{
		PageObjectID: "page_1",
		Size:         &model.Size{Width: &model.Dimension{Magnitude: -1}},
	}
	ops := []model.Operation{
		model.New(&model.CreateTable{ObjectID: "table_1", ElementProperties: ep, Rows: 1, Columns: 1}),
		model.New(&model.CreateImage{ObjectID: "image_1", URL: "https://example.com/a.png", ElementProperties: ep}),
		model.New(&model.CreateLine{ObjectID: "line_1", ElementProperties: ep}),
	}
	r := Validate(ops)
	assert.False(t, r.Valid)
	assert.Len(t, r.Errors, 3)
}

func TestValidate_UnknownKindAccepted(t *testing.T) {
	u, err := model.NewUnknown("createVideo", json.RawMessage(`{"width":-5}`))
	require.NoError(t, err)
	r := Validate([]model.Operation{model.New(u)})
	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
}

func TestValidate_StructuralErrors(t *testing.T) {
	tests := []struct {
		op   model.Operation
		want string
	}{
		{model.New(&model.DeleteObject{}), "objectId is required"},
		{model.New(&model.InsertText{ObjectID: "box_1"}), "text is required"},
		{model.New(&model.UpdateShapeProperties{ObjectID: "box_1"}), "fields mask is required"},
		{model.New(&model.UpdateTextStyle{ObjectID: "box_1"}), "fields mask is required"},
		{model.New(&model.UpdatePageElementTransform{ObjectID: "box_1"}), "transform is required"},
		{model.New(&model.GroupObjects{ChildrenObjectIDs: []string{"a"}}), "groupObjectId is required"},
		{model.New(&model.GroupObjects{GroupObjectID: "group_1", ChildrenObjectIDs: []string{"box_1"}}), "at least 2 childrenObjectIds are required"},
		{model.New(&model.UngroupObjects{}), "at least 1 objectIds entry is required"},
		{model.New(&model.ReplaceAllText{ReplaceText: "x"}), "containsText.text is required"},
		{model.New(&model.CreateShape{ObjectID: "box_1"}), "elementProperties.pageObjectId is required"},
		{model.New(&model.CreateImage{ObjectID: "image_1", ElementProperties: &model.ElementProperties{PageObjectID: "page_1"}}), "url is required"},
		{model.New(&model.CreateTable{ObjectID: "table_1", ElementProperties: &model.ElementProperties{PageObjectID: "page_1"}, Columns: 2}), "Rows must be positive"},
		{model.New(&model.CreateTable{ObjectID: "table_1", ElementProperties: &model.ElementProperties{PageObjectID: "page_1"}, Rows: 2}), "Columns must be positive"},
		{model.New(&model.UpdatePageElementTransform{ObjectID: "box_1", Transform: &model.Transform{ScaleX: 1, ScaleY: 1}, ApplyMode: "SIDEWAYS"}), `applyMode "SIDEWAYS" must be ABSOLUTE or RELATIVE`},
		{model.New(&model.InsertText{ObjectID: "box_1", Text: "x", InsertionIndex: -1}), "insertionIndex must not be negative"},
		{model.Operation{}, "operation is empty"},
	}
	for _, tt := range tests {
		r := Validate([]model.Operation{tt.op})
		assert.False(t, r.Valid, tt.want)
		assert.True(t, containsSubstring(r.Errors, tt.want), "want %q in %v", tt.want, r.Errors)
	}
}

func TestValidate_ErrorContext(t *testing.T) {
	ops := []model.Operation{
		shapeWithSize("box_1", 10, 10),
		model.New(&model.DeleteObject{}),
	}
	r := Validate(ops)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "Operation 2 (deleteObject): objectId is required", r.Errors[0])
	assert.Equal(t, map[string][]string{"operation-2": {r.Errors[0]}}, r.ByOperation)
}

func TestValidate_ErrorsAccumulateInOrder(t *testing.T) {
	ops := []model.Operation{
		shapeWithSize("box_1", -1, -1),
		model.New(&model.DeleteObject{}),
	}
	r := Validate(ops)
	assert.Equal(t, []string{
		"Operation 1 (createShape): Width must be positive",
		"Operation 1 (createShape): Height must be positive",
		"Operation 2 (deleteObject): objectId is required",
	}, r.Errors)
	assert.Len(t, r.ByOperation["box_1"], 2)
}

func TestValidate_RepeatedKeysStaySeparate(t *testing.T) {
	ops := []model.Operation{
		shapeWithSize("box_1", -1, 10),
		model.New(&model.InsertText{ObjectID: "box_1"}),
		model.New(&model.InsertText{ObjectID: "box_1", Text: "ok"}),
	}
	r := Validate(ops)
	require.Len(t, r.Errors, 2)
	assert.Equal(t, map[string][]string{
		"box_1":   {"Operation 1 (createShape): Width must be positive"},
		"box_1#2": {"Operation 2 (insertText): text is required"},
	}, r.ByOperation)
}

func TestOperationKeys(t *testing.T) {
	ops := []model.Operation{
		shapeWithSize("box_1", 10, 10),
		model.New(&model.InsertText{ObjectID: "box_1", Text: "a"}),
		model.New(&model.ReplaceAllText{}),
		model.New(&model.InsertText{ObjectID: "box_1", Text: "b"}),
	}
	assert.Equal(t, []string{"box_1", "box_1#2", "operation-3", "box_1#4"}, OperationKeys(ops))
	assert.Empty(t, OperationKeys(nil))
}

func TestValidate_UnsupportedUnit(t *testing.T) {
	op := model.New(&model.CreateShape{
		ObjectID: "box_1",
		ElementProperties: &model.ElementProperties{
			PageObjectID: "page_1",
			Size:         &model.Size{Width: &model.Dimension{Magnitude: 10, Unit: "PX"}},
		},
	})
	r := Validate([]model.Operation{op})
	assert.True(t, containsSubstring(r.Errors, `unit "PX" is not supported`))
}

func TestValidate_InvalidObjectID(t *testing.T) {
	r := Validate([]model.Operation{shapeWithSize("box", 10, 10)})
	assert.False(t, r.Valid)
	assert.True(t, containsSubstring(r.Errors, `object ID "box" is invalid`))
}

func TestValidate_DuplicateCreation(t *testing.T) {
	r := Validate([]model.Operation{shapeWithSize("box_1", 10, 10), shapeWithSize("box_1", 10, 10)})
	assert.False(t, r.Valid)
	assert.Contains(t, r.Errors, `Operation 2 (createShape): object ID "box_1" is already created by operation 1`)
}

func TestValidate_DanglingReferenceIsWarning(t *testing.T) {
	ops := []model.Operation{model.New(&model.InsertText{ObjectID: "ghost_1", Text: "hi"})}
	r := Validate(ops)
	assert.True(t, r.Valid)
	assert.Equal(t, []string{`Operation 1 (insertText): references object "ghost_1" not created earlier in this batch`}, r.Warnings)
	assert.Equal(t, StateWarning, r.State())
}

func TestValidate_ReferenceAfterCreateIsClean(t *testing.T) {
	ops := []model.Operation{
		model.New(&model.CreateSlide{ObjectID: "page_1"}),
		shapeWithSize("box_1", 100, 50),
		model.New(&model.InsertText{ObjectID: "box_1", Text: "hi"}),
	}
	r := Validate(ops)
	assert.True(t, r.Valid, r.Errors)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, StateValid, r.State())
}

func TestValidate_ReferenceAfterDelete(t *testing.T) {
	ops := []model.Operation{
		model.New(&model.CreateSlide{ObjectID: "page_1"}),
		shapeWithSize("box_1", 100, 50),
		model.New(&model.DeleteObject{ObjectID: "box_1"}),
		model.New(&model.InsertText{ObjectID: "box_1", Text: "hi"}),
	}
	r := Validate(ops)
	assert.True(t, r.Valid)
	assert.Equal(t, []string{`Operation 4 (insertText): references object "box_1" deleted by operation 3`}, r.Warnings)
}

func TestValidate_OffPageWarning(t *testing.T) {
	ops := []model.Operation{
		model.New(&model.CreateSlide{ObjectID: "page_1"}),
		shapeWithSize("box_1", 800, 50),
	}
	r := Validate(ops)
	assert.True(t, r.Valid)
	assert.True(t, containsSubstring(r.Warnings, "element extends beyond the page (720 x 405 pt)"))

	r = New(Options{}).Validate(ops)
	assert.Empty(t, r.Warnings)
}

func TestValidate_OffPageUsesEMU(t *testing.T) {
	op := model.New(&model.CreateShape{
		ObjectID: "box_1",
		ElementProperties: &model.ElementProperties{
			PageObjectID: "page_1",
			Size: &model.Size{
				Width:  &model.Dimension{Magnitude: 3000000, Unit: model.UnitEMU},
				Height: &model.Dimension{Magnitude: 3000000, Unit: model.UnitEMU},
			},
		},
	})
	r := Validate([]model.Operation{model.New(&model.CreateSlide{ObjectID: "page_1"}), op})
	assert.Empty(t, r.Warnings, "3000000 EMU is about 236 pt and fits the page")
}

func TestValidate_ZeroScaleWarning(t *testing.T) {
	op := model.New(&model.UpdatePageElementTransform{ObjectID: "box_1", Transform: &model.Transform{ScaleX: 0, ScaleY: 1}})
	r := Validate([]model.Operation{op})
	assert.True(t, r.Valid)
	assert.True(t, containsSubstring(r.Warnings, "scale of zero collapses the element"))
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	ops := []model.Operation{shapeWithSize("box_1", -1, 5), model.New(&model.DeleteObject{ObjectID: "box_1"})}
	before, err := json.Marshal(ops)
	require.NoError(t, err)

	first := Validate(ops)
	second := Validate(ops)

	after, err := json.Marshal(ops)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, first, second)
}

func TestParseState(t *testing.T) {
	for _, s := range []string{"valid", "warning", "invalid"} {
		got, ok := ParseState(s)
		assert.True(t, ok)
		assert.Equal(t, State(s), got)
	}
	_, ok := ParseState("bogus")
	assert.False(t, ok)
}
