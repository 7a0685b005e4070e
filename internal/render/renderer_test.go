package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/odontosys/internal/odontogram"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	space, err := odontogram.NewChartSpace(700, 873, 1000, 1200)
	require.NoError(t, err)
	return New(space)
}

func TestRenderWithoutBackgroundIsWhite(t *testing.T) {
	t.Parallel()

	r := testRenderer(t)
	assert.False(t, r.HasBackground())

	img := r.Render(nil)
	bounds := img.Bounds()
	assert.Equal(t, 700, bounds.Dx())
	assert.Equal(t, 873, bounds.Dy())

	r8, g8, b8, _ := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xFFFF), r8)
	assert.Equal(t, uint32(0xFFFF), g8)
	assert.Equal(t, uint32(0xFFFF), b8)
}

func TestRenderPlacesSymbolAtCanvasCoordinate(t *testing.T) {
	t.Parallel()

	r := testRenderer(t)
	// image coordinate (500, 412.37...) maps to canvas (350, 300)
	finding := odontogram.Finding{
		ToothNumber:   16,
		TreatmentCode: "CAR",
		Intent:        odontogram.IntentPlanned,
		X:             500,
		Y:             412.371134,
	}

	img := r.Render([]odontogram.Finding{finding})

	// center of the caries dot is red
	c := color.RGBAModel.Convert(img.At(350, 300)).(color.RGBA)
	assert.Greater(t, c.R, uint8(0xC0))
	assert.Less(t, c.G, uint8(0x40))
	assert.Less(t, c.B, uint8(0x40))

	// far corner stays white
	w := color.RGBAModel.Convert(img.At(10, 10)).(color.RGBA)
	assert.Equal(t, uint8(0xFF), w.R)
	assert.Equal(t, uint8(0xFF), w.G)
	assert.Equal(t, uint8(0xFF), w.B)
}

func TestRenderExistingFindingIsBlue(t *testing.T) {
	t.Parallel()

	r := testRenderer(t)
	finding := odontogram.Finding{
		ToothNumber:   16,
		TreatmentCode: "CAR",
		Intent:        odontogram.IntentExisting,
		X:             500,
		Y:             600,
	}

	img := r.Render([]odontogram.Finding{finding})
	cx, cy := 350, 436 // ToCanvas(500, 600) = (350, 436.5)
	c := color.RGBAModel.Convert(img.At(cx, cy)).(color.RGBA)
	assert.Greater(t, c.B, uint8(0xC0))
	assert.Less(t, c.R, uint8(0x40))
}

func TestRenderIsFullRedraw(t *testing.T) {
	t.Parallel()

	r := testRenderer(t)
	finding := odontogram.Finding{
		ToothNumber:   16,
		TreatmentCode: "CAR",
		Intent:        odontogram.IntentPlanned,
		X:             500,
		Y:             600,
	}

	// first render marks the canvas, second render without the finding
	// must not retain it
	_ = r.Render([]odontogram.Finding{finding})
	img := r.Render(nil)

	c := color.RGBAModel.Convert(img.At(350, 436)).(color.RGBA)
	assert.Equal(t, uint8(0xFF), c.R)
	assert.Equal(t, uint8(0xFF), c.G)
	assert.Equal(t, uint8(0xFF), c.B)
}

func TestSetBackgroundScalesToCanvas(t *testing.T) {
	t.Parallel()

	r := testRenderer(t)

	// solid green native-size background
	native := image.NewRGBA(image.Rect(0, 0, 1000, 1200))
	green := color.RGBA{G: 0xFF, A: 0xFF}
	for y := 0; y < 1200; y++ {
		for x := 0; x < 1000; x++ {
			native.SetRGBA(x, y, green)
		}
	}
	r.SetBackground(native)
	require.True(t, r.HasBackground())

	img := r.Render(nil)
	assert.Equal(t, 700, img.Bounds().Dx())
	assert.Equal(t, 873, img.Bounds().Dy())

	c := color.RGBAModel.Convert(img.At(350, 436)).(color.RGBA)
	assert.Equal(t, uint8(0xFF), c.G)
	assert.Less(t, c.R, uint8(0x10))
}

func TestLoadBackgroundMissingFile(t *testing.T) {
	t.Parallel()

	r := testRenderer(t)
	err := r.LoadBackground("/nonexistent/chart.png")
	assert.Error(t, err)
	assert.False(t, r.HasBackground())
}

func TestRenderPNGProducesDecodablePNG(t *testing.T) {
	t.Parallel()

	r := testRenderer(t)
	findings := []odontogram.Finding{
		{ToothNumber: 16, TreatmentCode: "CAR", Intent: odontogram.IntentPlanned, X: 500, Y: 600},
		{ToothNumber: 11, TreatmentCode: "EXO", Intent: odontogram.IntentPlanned, X: 200, Y: 100},
		{ToothNumber: 46, TreatmentCode: "CC", Intent: odontogram.IntentExisting, X: 800, Y: 1100},
	}

	var buf bytes.Buffer
	require.NoError(t, r.RenderPNG(&buf, findings))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 700, img.Bounds().Dx())
	assert.Equal(t, 873, img.Bounds().Dy())
}
