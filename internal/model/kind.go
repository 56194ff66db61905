package model

// Kind names an operation by its single top-level key.
type Kind string

const (
	KindCreateSlide                Kind = "createSlide"
	KindCreateShape                Kind = "createShape"
	KindCreateTable                Kind = "createTable"
	KindCreateImage                Kind = "createImage"
	KindCreateLine                 Kind = "createLine"
	KindInsertText                 Kind = "insertText"
	KindDeleteText                 Kind = "deleteText"
	KindReplaceAllText             Kind = "replaceAllText"
	KindUpdateTextStyle            Kind = "updateTextStyle"
	KindDeleteObject               Kind = "deleteObject"
	KindDuplicateObject            Kind = "duplicateObject"
	KindUpdateShapeProperties      Kind = "updateShapeProperties"
	KindUpdatePageElementTransform Kind = "updatePageElementTransform"
	KindGroupObjects               Kind = "groupObjects"
	KindUngroupObjects             Kind = "ungroupObjects"
)

// decoders maps every known kind to a constructor for its payload.
var decoders = map[Kind]func() Payload{
	KindCreateSlide:                func() Payload { return &CreateSlide{} },
	KindCreateShape:                func() Payload { return &CreateShape{} },
	KindCreateTable:                func() Payload { return &CreateTable{} },
	KindCreateImage:                func() Payload { return &CreateImage{} },
	KindCreateLine:                 func() Payload { return &CreateLine{} },
	KindInsertText:                 func() Payload { return &InsertText{} },
	KindDeleteText:                 func() Payload { return &DeleteText{} },
	KindReplaceAllText:             func() Payload { return &ReplaceAllText{} },
	KindUpdateTextStyle:            func() Payload { return &UpdateTextStyle{} },
	KindDeleteObject:               func() Payload { return &DeleteObject{} },
	KindDuplicateObject:            func() Payload { return &DuplicateObject{} },
	KindUpdateShapeProperties:      func() Payload { return &UpdateShapeProperties{} },
	KindUpdatePageElementTransform: func() Payload { return &UpdatePageElementTransform{} },
	KindGroupObjects:               func() Payload { return &GroupObjects{} },
	KindUngroupObjects:             func() Payload { return &UngroupObjects{} },
}

// Kinds returns every known kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindCreateSlide,
		KindCreateShape,
		KindCreateTable,
		KindCreateImage,
		KindCreateLine,
		KindInsertText,
		KindDeleteText,
		KindReplaceAllText,
		KindUpdateTextStyle,
		KindDeleteObject,
		KindDuplicateObject,
		KindUpdateShapeProperties,
		KindUpdatePageElementTransform,
		KindGroupObjects,
		KindUngroupObjects,
	}
}

// Known reports whether k has a typed payload.
func (k Kind) Known() bool {
	_, ok := decoders[k]
	return ok
}

// NewPayload returns an empty payload for k, or nil when k is unknown.
func NewPayload(k Kind) Payload {
	if ctor, ok := decoders[k]; ok {
		return ctor()
	}
	return nil
}
