package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const maxQuotedText = 30

// Describe returns a one-line, human-readable summary of op. It never fails:
// missing optional fields fall back to generic wording.
func Describe(op Operation) string {
	switch p := op.Payload.(type) {
	case nil:
		return "Empty operation"
	case *CreateSlide:
		s := "Create slide" + named(p.ObjectID)
		if p.SlideLayoutReference != nil && p.SlideLayoutReference.PredefinedLayout != "" {
			s += fmt.Sprintf(" (%s layout)", oneLine(p.SlideLayoutReference.PredefinedLayout))
		}
		if p.InsertionIndex != nil {
			s += fmt.Sprintf(" at position %d", *p.InsertionIndex)
		}
		return s
	case *CreateShape:
		return "Create " + qualified(p.ShapeType, "shape") + named(p.ObjectID) + placement(p.ElementProperties)
	case *CreateTable:
		return fmt.Sprintf("Create %dx%d table%s%s", p.Rows, p.Columns, named(p.ObjectID), placement(p.ElementProperties))
	case *CreateImage:
		return "Create image" + named(p.ObjectID) + placement(p.ElementProperties)
	case *CreateLine:
		return "Create " + qualified(p.LineCategory, "line") + named(p.ObjectID) + placement(p.ElementProperties)
	case *InsertText:
		return fmt.Sprintf("Insert %s into%s%s", quote(p.Text), target(p.ObjectID), cell(p.CellLocation))
	case *DeleteText:
		return "Delete text from" + target(p.ObjectID) + cell(p.CellLocation)
	case *ReplaceAllText:
		find := ""
		if p.ContainsText != nil {
			find = p.ContainsText.Text
		}
		s := fmt.Sprintf("Replace all %s with %s", quote(find), quote(p.ReplaceText))
		if n := len(p.PageObjectIDs); n > 0 {
			s += fmt.Sprintf(" on %d %s", n, plural(n, "page", "pages"))
		}
		return s
	case *UpdateTextStyle:
		return "Update text style of" + target(p.ObjectID) + fields(p.Fields)
	case *DeleteObject:
		return "Delete object" + target(p.ObjectID)
	case *DuplicateObject:
		return "Duplicate object" + target(p.ObjectID)
	case *UpdateShapeProperties:
		return "Update properties of shape" + target(p.ObjectID) + fields(p.Fields)
	case *UpdatePageElementTransform:
		s := "Transform element" + target(p.ObjectID)
		if p.ApplyMode != "" {
			s += fmt.Sprintf(" (%s)", strings.ToLower(oneLine(p.ApplyMode)))
		}
		return s
	case *GroupObjects:
		n := len(p.ChildrenObjectIDs)
		return fmt.Sprintf("Group %d %s", n, plural(n, "object", "objects")) + into(p.GroupObjectID)
	case *UngroupObjects:
		n := len(p.ObjectIDs)
		return fmt.Sprintf("Ungroup %d %s", n, plural(n, "group", "groups"))
	case *Unknown:
		return fmt.Sprintf("Apply %s operation", orDefault(oneLine(string(p.Name)), "unnamed"))
	default:
		return fmt.Sprintf("Apply %s operation", oneLine(string(op.Kind())))
	}
}

func named(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf(" %q", id)
}

func target(id string) string {
	if id == "" {
		return " object"
	}
	return fmt.Sprintf(" %q", id)
}

func into(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf(" into %q", id)
}

func qualified(kind, word string) string {
	kind = oneLine(kind)
	if kind == "" {
		return word
	}
	return kind + " " + word
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func quote(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) > maxQuotedText {
		text = string(r[:maxQuotedText]) + "…"
	}
	return strconv.Quote(text)
}

func cell(c *TableCellLocation) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf(" (cell %d,%d)", c.RowIndex, c.ColumnIndex)
}

func fields(mask string) string {
	mask = oneLine(mask)
	if mask == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", mask)
}

// oneLine turns control characters into spaces and collapses whitespace runs
// so free text from a payload cannot break the line it is printed on.
func oneLine(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// placement renders the element size in points, the unit readers reason in.
func placement(ep *ElementProperties) string {
	if ep == nil || ep.Size == nil || ep.Size.Width == nil || ep.Size.Height == nil {
		return ""
	}
	return fmt.Sprintf(" (%sx%s pt)", formatPt(ep.Size.Width.Pt()), formatPt(ep.Size.Height.Pt()))
}

func formatPt(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
