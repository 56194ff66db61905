package model

import (
	"bytes"
	"encoding/json"
)

// Payload is implemented by every operation variant. The set of variants is
// closed: one struct per known Kind plus Unknown.
type Payload interface {
	Kind() Kind
	payload()
}

type CreateSlide struct {
	ObjectID             string           `json:"objectId,omitempty"`
	InsertionIndex       *int             `json:"insertionIndex,omitempty"`
	SlideLayoutReference *LayoutReference `json:"slideLayoutReference,omitempty"`
}

type CreateShape struct {
	ObjectID          string             `json:"objectId,omitempty"`
	ShapeType         string             `json:"shapeType,omitempty"`
	ElementProperties *ElementProperties `json:"elementProperties,omitempty"`
}

type CreateTable struct {
	ObjectID          string             `json:"objectId,omitempty"`
	ElementProperties *ElementProperties `json:"elementProperties,omitempty"`
	Rows              int                `json:"rows"`
	Columns           int                `json:"columns"`
}

type CreateImage struct {
	ObjectID          string             `json:"objectId,omitempty"`
	URL               string             `json:"url"`
	ElementProperties *ElementProperties `json:"elementProperties,omitempty"`
}

type CreateLine struct {
	ObjectID          string             `json:"objectId,omitempty"`
	LineCategory      string             `json:"lineCategory,omitempty"`
	ElementProperties *ElementProperties `json:"elementProperties,omitempty"`
}

type InsertText struct {
	ObjectID       string             `json:"objectId"`
	CellLocation   *TableCellLocation `json:"cellLocation,omitempty"`
	Text           string             `json:"text"`
	InsertionIndex int                `json:"insertionIndex,omitempty"`
}

type DeleteText struct {
	ObjectID     string             `json:"objectId"`
	CellLocation *TableCellLocation `json:"cellLocation,omitempty"`
	TextRange    *Range             `json:"textRange,omitempty"`
}

type ReplaceAllText struct {
	ContainsText  *SubstringMatch `json:"containsText,omitempty"`
	ReplaceText   string          `json:"replaceText"`
	PageObjectIDs []string        `json:"pageObjectIds,omitempty"`
}

type UpdateTextStyle struct {
	ObjectID     string             `json:"objectId"`
	CellLocation *TableCellLocation `json:"cellLocation,omitempty"`
	Style        map[string]any     `json:"style,omitempty"`
	TextRange    *Range             `json:"textRange,omitempty"`
	Fields       string             `json:"fields"`
}

type DeleteObject struct {
	ObjectID string `json:"objectId"`
}

// DuplicateObject copies ObjectID. ObjectIDs maps source IDs to the IDs the
// copies should receive.
type DuplicateObject struct {
	ObjectID  string            `json:"objectId"`
	ObjectIDs map[string]string `json:"objectIds,omitempty"`
}

type UpdateShapeProperties struct {
	ObjectID        string         `json:"objectId"`
	ShapeProperties map[string]any `json:"shapeProperties,omitempty"`
	Fields          string         `json:"fields"`
}

type UpdatePageElementTransform struct {
	ObjectID  string     `json:"objectId"`
	Transform *Transform `json:"transform,omitempty"`
	ApplyMode string     `json:"applyMode,omitempty"`
}

type GroupObjects struct {
	GroupObjectID     string   `json:"groupObjectId,omitempty"`
	ChildrenObjectIDs []string `json:"childrenObjectIds"`
}

type UngroupObjects struct {
	ObjectIDs []string `json:"objectIds"`
}

// Unknown carries an operation whose kind this package does not model. Raw
// holds the compact JSON payload so it survives a round trip untouched.
type Unknown struct {
	Name Kind
	Raw  json.RawMessage
}

// NewUnknown builds an Unknown payload, compacting raw. A nil raw becomes {}.
func NewUnknown(name Kind, raw json.RawMessage) (*Unknown, error) {
	if len(raw) == 0 {
		return &Unknown{Name: name, Raw: json.RawMessage("{}")}, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return &Unknown{Name: name, Raw: json.RawMessage(buf.Bytes())}, nil
}

func (*CreateSlide) Kind() Kind                { return KindCreateSlide }
func (*CreateShape) Kind() Kind                { return KindCreateShape }
func (*CreateTable) Kind() Kind                { return KindCreateTable }
func (*CreateImage) Kind() Kind                { return KindCreateImage }
func (*CreateLine) Kind() Kind                 { return KindCreateLine }
func (*InsertText) Kind() Kind                 { return KindInsertText }
func (*DeleteText) Kind() Kind                 { return KindDeleteText }
func (*ReplaceAllText) Kind() Kind             { return KindReplaceAllText }
func (*UpdateTextStyle) Kind() Kind            { return KindUpdateTextStyle }
func (*DeleteObject) Kind() Kind               { return KindDeleteObject }
func (*DuplicateObject) Kind() Kind            { return KindDuplicateObject }
func (*UpdateShapeProperties) Kind() Kind      { return KindUpdateShapeProperties }
func (*UpdatePageElementTransform) Kind() Kind { return KindUpdatePageElementTransform }
func (*GroupObjects) Kind() Kind               { return KindGroupObjects }
func (*UngroupObjects) Kind() Kind             { return KindUngroupObjects }
func (u *Unknown) Kind() Kind                  { return u.Name }

func (*CreateSlide) payload()                {}
func (*CreateShape) payload()                {}
func (*CreateTable) payload()                {}
func (*CreateImage) payload()                {}
func (*CreateLine) payload()                 {}
func (*InsertText) payload()                 {}
func (*DeleteText) payload()                 {}
func (*ReplaceAllText) payload()             {}
func (*UpdateTextStyle) payload()            {}
func (*DeleteObject) payload()               {}
func (*DuplicateObject) payload()            {}
func (*UpdateShapeProperties) payload()      {}
func (*UpdatePageElementTransform) payload() {}
func (*GroupObjects) payload()               {}
func (*UngroupObjects) payload()             {}
func (*Unknown) payload()                    {}
