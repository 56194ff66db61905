package model

import "sort"

// CreatedIDs returns the object IDs op brings into existence.
func CreatedIDs(op Operation) []string {
	switch p := op.Payload.(type) {
	case *CreateSlide:
		return nonEmpty(p.ObjectID)
	case *CreateShape:
		return nonEmpty(p.ObjectID)
	case *CreateTable:
		return nonEmpty(p.ObjectID)
	case *CreateImage:
		return nonEmpty(p.ObjectID)
	case *CreateLine:
		return nonEmpty(p.ObjectID)
	case *GroupObjects:
		return nonEmpty(p.GroupObjectID)
	case *DuplicateObject:
		keys := make([]string, 0, len(p.ObjectIDs))
		for k := range p.ObjectIDs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var ids []string
		for _, k := range keys {
			ids = append(ids, nonEmpty(p.ObjectIDs[k])...)
		}
		return ids
	}
	return nil
}

// ReferencedIDs returns the object IDs op expects to exist already.
func ReferencedIDs(op Operation) []string {
	switch p := op.Payload.(type) {
	case *CreateShape:
		return pageOf(p.ElementProperties)
	case *CreateTable:
		return pageOf(p.ElementProperties)
	case *CreateImage:
		return pageOf(p.ElementProperties)
	case *CreateLine:
		return pageOf(p.ElementProperties)
	case *InsertText:
		return nonEmpty(p.ObjectID)
	case *DeleteText:
		return nonEmpty(p.ObjectID)
	case *UpdateTextStyle:
		return nonEmpty(p.ObjectID)
	case *DeleteObject:
		return nonEmpty(p.ObjectID)
	case *DuplicateObject:
		return nonEmpty(p.ObjectID)
	case *UpdateShapeProperties:
		return nonEmpty(p.ObjectID)
	case *UpdatePageElementTransform:
		return nonEmpty(p.ObjectID)
	case *ReplaceAllText:
		return nonEmpty(p.PageObjectIDs...)
	case *GroupObjects:
		return nonEmpty(p.ChildrenObjectIDs...)
	case *UngroupObjects:
		return nonEmpty(p.ObjectIDs...)
	}
	return nil
}

// DeletedIDs returns the object IDs that no longer exist after op.
func DeletedIDs(op Operation) []string {
	switch p := op.Payload.(type) {
	case *DeleteObject:
		return nonEmpty(p.ObjectID)
	case *UngroupObjects:
		return nonEmpty(p.ObjectIDs...)
	}
	return nil
}

// PrimaryID is the identifier op is known by: the object it creates, else
// the object it edits. Empty when op names no single object.
func PrimaryID(op Operation) string {
	switch op.Payload.(type) {
	case *CreateSlide, *CreateShape, *CreateTable, *CreateImage, *CreateLine, *GroupObjects:
		return first(CreatedIDs(op))
	case *ReplaceAllText:
		return ""
	}
	return first(ReferencedIDs(op))
}

func first(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func pageOf(ep *ElementProperties) []string {
	if ep == nil {
		return nil
	}
	return nonEmpty(ep.PageObjectID)
}

func nonEmpty(ids ...string) []string {
	var out []string
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
