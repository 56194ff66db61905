package validate

import (
	"strings"

	"github.com/rogersnm/opbatch/internal/model"
)

// checkStructure applies the per-kind field rules.
func (w *walk) checkStructure() {
	switch p := w.op.Payload.(type) {
	case *model.CreateSlide:
		if p.InsertionIndex != nil && *p.InsertionIndex < 0 {
			w.errorf("insertionIndex must not be negative")
		}
	case *model.CreateShape:
		w.checkElement(p.ElementProperties)
	case *model.CreateTable:
		w.checkElement(p.ElementProperties)
		if p.Rows < 1 {
			w.errorf("Rows must be positive")
		}
		if p.Columns < 1 {
			w.errorf("Columns must be positive")
		}
	case *model.CreateImage:
		w.checkElement(p.ElementProperties)
		if strings.TrimSpace(p.URL) == "" {
			w.errorf("url is required")
		}
	case *model.CreateLine:
		w.checkElement(p.ElementProperties)
	case *model.InsertText:
		w.requireObjectID(p.ObjectID)
		if p.Text == "" {
			w.errorf("text is required")
		}
		if p.InsertionIndex < 0 {
			w.errorf("insertionIndex must not be negative")
		}
		w.checkCell(p.CellLocation)
	case *model.DeleteText:
		w.requireObjectID(p.ObjectID)
		w.checkCell(p.CellLocation)
		w.checkRange(p.TextRange)
	case *model.ReplaceAllText:
		if p.ContainsText == nil || p.ContainsText.Text == "" {
			w.errorf("containsText.text is required")
		}
	case *model.UpdateTextStyle:
		w.requireObjectID(p.ObjectID)
		w.requireFields(p.Fields)
		w.checkCell(p.CellLocation)
		w.checkRange(p.TextRange)
	case *model.DeleteObject:
		w.requireObjectID(p.ObjectID)
	case *model.DuplicateObject:
		w.requireObjectID(p.ObjectID)
	case *model.UpdateShapeProperties:
		w.requireObjectID(p.ObjectID)
		w.requireFields(p.Fields)
	case *model.UpdatePageElementTransform:
		w.requireObjectID(p.ObjectID)
		if p.Transform == nil {
			w.errorf("transform is required")
		} else {
			w.checkTransform(p.Transform)
		}
		switch p.ApplyMode {
		case "", "ABSOLUTE", "RELATIVE":
		default:
			w.errorf("applyMode %q must be ABSOLUTE or RELATIVE", p.ApplyMode)
		}
	case *model.GroupObjects:
		if p.GroupObjectID == "" {
			w.errorf("groupObjectId is required")
		}
		if countNonEmpty(p.ChildrenObjectIDs) < 2 {
			w.errorf("at least 2 childrenObjectIds are required")
		}
	case *model.UngroupObjects:
		if countNonEmpty(p.ObjectIDs) < 1 {
			w.errorf("at least 1 objectIds entry is required")
		}
	case *model.Unknown:
		// Forward compatible: kinds this build does not model pass through.
	}
}

func (w *walk) requireObjectID(objectID string) {
	if strings.TrimSpace(objectID) == "" {
		w.errorf("objectId is required")
	}
}

func (w *walk) requireFields(mask string) {
	if strings.TrimSpace(mask) == "" {
		w.errorf("fields mask is required")
	}
}

func (w *walk) checkCell(c *model.TableCellLocation) {
	if c == nil {
		return
	}
	if c.RowIndex < 0 || c.ColumnIndex < 0 {
		w.errorf("cellLocation indexes must not be negative")
	}
}

func (w *walk) checkRange(r *model.Range) {
	if r == nil {
		return
	}
	if r.StartIndex != nil && *r.StartIndex < 0 {
		w.errorf("textRange.startIndex must not be negative")
	}
	if r.StartIndex != nil && r.EndIndex != nil && *r.EndIndex < *r.StartIndex {
		w.errorf("textRange.endIndex must not be before startIndex")
	}
}

func (w *walk) checkElement(ep *model.ElementProperties) {
	if ep == nil || strings.TrimSpace(ep.PageObjectID) == "" {
		w.errorf("elementProperties.pageObjectId is required")
	}
	if ep == nil {
		return
	}
	if ep.Size != nil {
		w.checkDimension("Width", ep.Size.Width)
		w.checkDimension("Height", ep.Size.Height)
	}
	if ep.Transform != nil {
		w.checkTransform(ep.Transform)
	}
	w.checkBounds(ep)
}

func (w *walk) checkDimension(name string, d *model.Dimension) {
	if d == nil {
		return
	}
	if d.Magnitude < 0 {
		w.errorf("%s must be positive", name)
	}
	if !d.Unit.Supported() {
		w.errorf("unit %q is not supported", d.Unit)
	}
}

func (w *walk) checkTransform(t *model.Transform) {
	if !t.Unit.Supported() {
		w.errorf("unit %q is not supported", t.Unit)
	}
	if t.ScaleX == 0 || t.ScaleY == 0 {
		w.warnf("scale of zero collapses the element")
	}
}

// checkBounds warns when the element, measured in points, sticks out of the
// page. Scale and shear are ignored.
func (w *walk) checkBounds(ep *model.ElementProperties) {
	if w.opts.PageWidthPt <= 0 || w.opts.PageHeightPt <= 0 {
		return
	}
	if ep.Size == nil || ep.Size.Width == nil || ep.Size.Height == nil {
		return
	}
	width, height := ep.Size.Width.Pt(), ep.Size.Height.Pt()
	var x, y float64
	if ep.Transform != nil {
		x, y = ep.Transform.TranslatePt()
	}
	if x < 0 || y < 0 || x+width > w.opts.PageWidthPt || y+height > w.opts.PageHeightPt {
		w.warnf("element extends beyond the page (%g x %g pt)", w.opts.PageWidthPt, w.opts.PageHeightPt)
	}
}

func countNonEmpty(ids []string) int {
	n := 0
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			n++
		}
	}
	return n
}
