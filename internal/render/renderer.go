package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"sync"

	_ "image/jpeg" // background decode support

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"

	"github.com/odontosys/odontosys/internal/errors"
	"github.com/odontosys/odontosys/internal/odontogram"
)

// Renderer draws the odontogram canvas. The background image is loaded once;
// every Render call is a full redraw: background first, then one symbol per
// finding at its forward-transformed coordinate.
type Renderer struct {
	space odontogram.ChartSpace

	mu         sync.Mutex
	background image.Image // scaled to canvas size, nil until loaded
}

// New returns a renderer for the given chart space with no background.
func New(space odontogram.ChartSpace) *Renderer {
	return &Renderer{space: space}
}

// LoadBackground decodes the chart image from disk and scales it to the
// logical canvas size. Later calls replace the previous background.
func (r *Renderer) LoadBackground(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryImageRender).
			Context("path", path).
			Build()
	}

	r.SetBackground(img)
	return nil
}

// SetBackground installs a background image, scaling it to the canvas.
func (r *Renderer) SetBackground(img image.Image) {
	canvasW := int(r.space.CanvasWidth)
	canvasH := int(r.space.CanvasHeight)

	scaled := image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Over, nil)

	r.mu.Lock()
	r.background = scaled
	r.mu.Unlock()
}

// HasBackground reports whether a background image has been loaded.
func (r *Renderer) HasBackground() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.background != nil
}

// Render produces the charted canvas for the given findings. Without a
// background a plain white chart base is used.
func (r *Renderer) Render(findings []odontogram.Finding) image.Image {
	dc := gg.NewContext(int(r.space.CanvasWidth), int(r.space.CanvasHeight))
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(color.White)
	dc.Clear()

	r.mu.Lock()
	bg := r.background
	r.mu.Unlock()
	if bg != nil {
		dc.DrawImage(bg, 0, 0)
	}

	for i := range findings {
		r.drawFinding(dc, &findings[i])
	}

	return dc.Image()
}

// RenderPNG renders the findings and writes the canvas as PNG.
func (r *Renderer) RenderPNG(w io.Writer, findings []odontogram.Finding) error {
	img := r.Render(findings)
	if err := png.Encode(w, img); err != nil {
		return errors.New(err).
			Category(errors.CategoryImageRender).
			Build()
	}
	return nil
}

// drawFinding draws one symbol at the finding's canvas position.
func (r *Renderer) drawFinding(dc *gg.Context, f *odontogram.Finding) {
	x, y := r.space.ToCanvas(f.X, f.Y)
	col := intentColor(f.Intent)
	dc.SetColor(col)

	switch SymbolForCode(f.TreatmentCode) {
	case SymbolCross:
		dc.SetLineWidth(crossStrokeWidth)
		dc.DrawLine(x-crossHalfDiagonal, y-crossHalfDiagonal, x+crossHalfDiagonal, y+crossHalfDiagonal)
		dc.Stroke()
		dc.DrawLine(x-crossHalfDiagonal, y+crossHalfDiagonal, x+crossHalfDiagonal, y-crossHalfDiagonal)
		dc.Stroke()

	case SymbolCaries:
		dc.DrawCircle(x, y, cariesRadius)
		dc.Fill()

	case SymbolCrown:
		dc.SetLineWidth(crownStrokeWidth)
		dc.DrawCircle(x, y, crownRadius)
		dc.Stroke()

	case SymbolImplant:
		dc.DrawStringAnchored("IMP", x, y, 0.5, 0.5)

	case SymbolRestoration:
		dc.DrawRectangle(x-squareHalfSide, y-squareHalfSide, 2*squareHalfSide, 2*squareHalfSide)
		dc.Fill()

	case SymbolRootCanal:
		dc.SetLineWidth(rootCanalStroke)
		dc.DrawLine(x, y-rootCanalHalfLen, x, y+rootCanalHalfLen)
		dc.Stroke()

	case SymbolFracture:
		dc.SetLineWidth(fractureStroke)
		dc.DrawLine(x-fractureHalfLen, y-fractureHalfLen, x+fractureHalfLen, y+fractureHalfLen)
		dc.Stroke()

	case SymbolResidualRoot:
		dc.DrawStringAnchored("RR", x, y, 0.5, 0.5)

	case SymbolProsthesis:
		dc.SetLineWidth(crownStrokeWidth)
		dc.DrawLine(x-prosthesisHalfLen, y-prosthesisOffset, x+prosthesisHalfLen, y-prosthesisOffset)
		dc.Stroke()
		dc.DrawLine(x-prosthesisHalfLen, y+prosthesisOffset, x+prosthesisHalfLen, y+prosthesisOffset)
		dc.Stroke()

	case SymbolFallback:
		dc.DrawCircle(x, y, fallbackRadius)
		dc.Fill()
		dc.SetColor(color.White)
		dc.SetLineWidth(fallbackRingStroke)
		dc.DrawCircle(x, y, fallbackRadius)
		dc.Stroke()
	}
}
