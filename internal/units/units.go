// Package units converts lengths between points, pixels and EMUs.
package units

import "strings"

const (
	// DefaultDPI is the screen resolution assumed when none is given.
	DefaultDPI = 96.0
	// PointsPerInch is fixed by the point definition.
	PointsPerInch = 72.0
	// EMUPerPoint is the number of English Metric Units in one point.
	EMUPerPoint = 12700.0
)

// PtToPixels converts points to pixels at dpi. A non-positive dpi means DefaultDPI.
func PtToPixels(pt, dpi float64) float64 {
	return pt * resolve(dpi) / PointsPerInch
}

// PixelsToPt converts pixels at dpi to points. A non-positive dpi means DefaultDPI.
func PixelsToPt(px, dpi float64) float64 {
	return px * PointsPerInch / resolve(dpi)
}

func EMUToPt(emu float64) float64 {
	return emu / EMUPerPoint
}

func PtToEMU(pt float64) float64 {
	return pt * EMUPerPoint
}

// ToPt normalizes a magnitude expressed in unit to points. EMU is the only
// unit that needs scaling; PT, UNIT_UNSPECIFIED and empty are taken as points.
func ToPt(magnitude float64, unit string) float64 {
	if strings.EqualFold(unit, "EMU") {
		return EMUToPt(magnitude)
	}
	return magnitude
}

// Convert converts value between the named scales "pt", "px" and "emu".
func Convert(value float64, from, to string, dpi float64) (float64, bool) {
	var pt float64
	switch strings.ToLower(from) {
	case "pt":
		pt = value
	case "px":
		pt = PixelsToPt(value, dpi)
	case "emu":
		pt = EMUToPt(value)
	default:
		return 0, false
	}
	switch strings.ToLower(to) {
	case "pt":
		return pt, true
	case "px":
		return PtToPixels(pt, dpi), true
	case "emu":
		return PtToEMU(pt), true
	}
	return 0, false
}

func resolve(dpi float64) float64 {
	if dpi <= 0 {
		return DefaultDPI
	}
	return dpi
}
