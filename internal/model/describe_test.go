package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe_Phrases(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{New(&CreateShape{ObjectID: "box_1", ShapeType: "RECTANGLE"}), `Create RECTANGLE shape "box_1"`},
		{New(&CreateShape{}), "Create shape"},
		{New(&CreateTable{ObjectID: "table_1", Rows: 3, Columns: 4}), `Create 3x4 table "table_1"`},
		{New(&CreateLine{}), "Create line"},
		{New(&InsertText{ObjectID: "box_1", Text: "Hello\nworld"}), `Insert "Hello world" into "box_1"`},
		{New(&InsertText{Text: "x"}), `Insert "x" into object`},
		{New(&DeleteObject{ObjectID: "box_1"}), `Delete object "box_1"`},
		{New(&GroupObjects{GroupObjectID: "group_1", ChildrenObjectIDs: []string{"a", "b", "c"}}), `Group 3 objects into "group_1"`},
		{New(&UngroupObjects{ObjectIDs: []string{"group_1"}}), "Ungroup 1 group"},
		{New(&ReplaceAllText{ContainsText: &SubstringMatch{Text: "foo"}, ReplaceText: "bar"}), `Replace all "foo" with "bar"`},
		{New(&ReplaceAllText{}), `Replace all "" with ""`},
		{New(&UpdatePageElementTransform{ObjectID: "box_1", ApplyMode: "ABSOLUTE"}), `Transform element "box_1" (absolute)`},
		{New(&UpdateShapeProperties{ObjectID: "box_1", Fields: "outline"}), `Update properties of shape "box_1" (outline)`},
		{New(&CreateSlide{ObjectID: "page_1", SlideLayoutReference: &LayoutReference{PredefinedLayout: "BLANK"}}), `Create slide "page_1" (BLANK layout)`},
		{Operation{}, "Empty operation"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(tt.op))
	}
}

func TestDescribe_SizeInPoints(t *testing.T) {
	op := New(&CreateShape{
		ObjectID:  "box_1",
		ShapeType: "ELLIPSE",
		ElementProperties: &ElementProperties{Size: &Size{
			Width:  &Dimension{Magnitude: 2540000, Unit: UnitEMU},
			Height: &Dimension{Magnitude: 100, Unit: UnitPT},
		}},
	})
	assert.Equal(t, `Create ELLIPSE shape "box_1" (200x100 pt)`, Describe(op))
}

func TestDescribe_TruncatesLongText(t *testing.T) {
	op := New(&InsertText{ObjectID: "box_1", Text: strings.Repeat("a", 40)})
	assert.Equal(t, `Insert "`+strings.Repeat("a", 30)+`…" into "box_1"`, Describe(op))
}

func TestDescribe_FreeTextOnOneLine(t *testing.T) {
	op := New(&CreateShape{ObjectID: "box_1", ShapeType: "RECTANGLE\n```json\n{}\n```\x1b"})
	assert.Equal(t, "Create RECTANGLE ```json {} ``` shape \"box_1\"", Describe(op))

	u, _ := NewUnknown("odd\r\nkind", nil)
	assert.Equal(t, "Apply odd kind operation", Describe(New(u)))
}

func TestDescribe_Unknown(t *testing.T) {
	u, _ := NewUnknown("createVideo", nil)
	assert.Equal(t, "Apply createVideo operation", Describe(New(u)))
}

func TestDescribe_EveryKnownKind(t *testing.T) {
	for _, k := range Kinds() {
		d := Describe(New(NewPayload(k)))
		assert.NotEmpty(t, d, k)
		assert.NotContains(t, d, "Apply", k)
	}
}

func TestCreatedAndReferencedIDs(t *testing.T) {
	shape := New(&CreateShape{ObjectID: "box_1", ElementProperties: &ElementProperties{PageObjectID: "page_1"}})
	assert.Equal(t, []string{"box_1"}, CreatedIDs(shape))
	assert.Equal(t, []string{"page_1"}, ReferencedIDs(shape))
	assert.Equal(t, "box_1", PrimaryID(shape))

	dup := New(&DuplicateObject{ObjectID: "box_1", ObjectIDs: map[string]string{"b": "copy_b", "a": "copy_a"}})
	assert.Equal(t, []string{"copy_a", "copy_b"}, CreatedIDs(dup))
	assert.Equal(t, "box_1", PrimaryID(dup))

	group := New(&GroupObjects{GroupObjectID: "group_1", ChildrenObjectIDs: []string{"a", "", "b"}})
	assert.Equal(t, []string{"a", "b"}, ReferencedIDs(group))
	assert.Equal(t, "group_1", PrimaryID(group))

	del := New(&DeleteObject{ObjectID: "box_1"})
	assert.Equal(t, []string{"box_1"}, DeletedIDs(del))
	assert.Equal(t, "box_1", PrimaryID(del))

	assert.Equal(t, "", PrimaryID(New(&CreateShape{ElementProperties: &ElementProperties{PageObjectID: "page_1"}})))
	assert.Equal(t, "", PrimaryID(New(&ReplaceAllText{PageObjectIDs: []string{"page_1"}})))
	assert.Nil(t, CreatedIDs(Operation{}))
}
