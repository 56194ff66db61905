package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtToPixels_DefaultDPI(t *testing.T) {
	assert.Equal(t, 96.0, PtToPixels(72, DefaultDPI))
	assert.Equal(t, 96.0, PtToPixels(72, 0))
}

func TestPixelsToPt_DefaultDPI(t *testing.T) {
	assert.Equal(t, 72.0, PixelsToPt(96, DefaultDPI))
}

func TestPtToPixels_CustomDPI(t *testing.T) {
	assert.Equal(t, 144.0, PtToPixels(72, 144))
	assert.Equal(t, 72.0, PixelsToPt(144, 144))
}

func TestEMU(t *testing.T) {
	assert.Equal(t, 1.0, EMUToPt(12700))
	assert.Equal(t, 12700.0, PtToEMU(1))
}

func TestRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 0.5, 1, 13.37, 72, 720, 12345.678, 1e9} {
		assert.InDelta(t, x, PixelsToPt(PtToPixels(x, DefaultDPI), DefaultDPI), 1e-9*(1+x))
		assert.InDelta(t, x, PtToPixels(PixelsToPt(x, DefaultDPI), DefaultDPI), 1e-9*(1+x))
		assert.InDelta(t, x, EMUToPt(PtToEMU(x)), 1e-9*(1+x))
	}
}

func TestToPt(t *testing.T) {
	assert.Equal(t, 2.0, ToPt(25400, "EMU"))
	assert.Equal(t, 5.0, ToPt(5, "PT"))
	assert.Equal(t, 5.0, ToPt(5, ""))
}

func TestConvert(t *testing.T) {
	v, ok := Convert(1, "pt", "emu", 0)
	assert.True(t, ok)
	assert.Equal(t, 12700.0, v)

	v, ok = Convert(96, "px", "pt", 96)
	assert.True(t, ok)
	assert.Equal(t, 72.0, v)

	_, ok = Convert(1, "cm", "pt", 0)
	assert.False(t, ok)
	_, ok = Convert(1, "pt", "in", 0)
	assert.False(t, ok)
}
