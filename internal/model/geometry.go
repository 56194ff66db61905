package model

import "github.com/rogersnm/opbatch/internal/units"

// Unit tags the scale of a Dimension or Transform.
type Unit string

const (
	UnitPT          Unit = "PT"
	UnitEMU         Unit = "EMU"
	UnitUnspecified Unit = "UNIT_UNSPECIFIED"
)

// Supported reports whether u is one of the document API's units. The empty
// unit is accepted and read as points.
func (u Unit) Supported() bool {
	switch u {
	case "", UnitPT, UnitEMU, UnitUnspecified:
		return true
	}
	return false
}

type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      Unit    `json:"unit,omitempty"`
}

// Pt returns the magnitude in points.
func (d Dimension) Pt() float64 {
	return units.ToPt(d.Magnitude, string(d.Unit))
}

type Size struct {
	Width  *Dimension `json:"width,omitempty"`
	Height *Dimension `json:"height,omitempty"`
}

// Transform is an affine transform. Shear is optional.
type Transform struct {
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	ShearX     float64 `json:"shearX,omitempty"`
	ShearY     float64 `json:"shearY,omitempty"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	Unit       Unit    `json:"unit,omitempty"`
}

// TranslatePt returns the translation in points.
func (t Transform) TranslatePt() (x, y float64) {
	return units.ToPt(t.TranslateX, string(t.Unit)), units.ToPt(t.TranslateY, string(t.Unit))
}

// ElementProperties places a new page element on a page.
type ElementProperties struct {
	PageObjectID string     `json:"pageObjectId,omitempty"`
	Size         *Size      `json:"size,omitempty"`
	Transform    *Transform `json:"transform,omitempty"`
}

type LayoutReference struct {
	PredefinedLayout string `json:"predefinedLayout,omitempty"`
	LayoutID         string `json:"layoutId,omitempty"`
}

type TableCellLocation struct {
	RowIndex    int `json:"rowIndex"`
	ColumnIndex int `json:"columnIndex"`
}

// Range selects text by index. Type is one of FIXED_RANGE, FROM_START_INDEX or ALL.
type Range struct {
	Type       string `json:"type,omitempty"`
	StartIndex *int   `json:"startIndex,omitempty"`
	EndIndex   *int   `json:"endIndex,omitempty"`
}

type SubstringMatch struct {
	Text      string `json:"text"`
	MatchCase bool   `json:"matchCase,omitempty"`
}
