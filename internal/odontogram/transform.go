package odontogram

import (
	"github.com/odontosys/odontosys/internal/errors"
)

// ChartSpace converts between on-screen canvas pixels and native background
// image pixels. Findings are stored in native-image coordinates; the forward
// transform places them on the canvas and the inverse transform converts a
// canvas click back to storage coordinates. The two transforms are exact
// inverses so a click round-trips through storage to the same screen position
// regardless of display scale.
type ChartSpace struct {
	CanvasWidth  float64 // logical canvas width in pixels
	CanvasHeight float64 // logical canvas height in pixels
	ImageWidth   float64 // native background image width in pixels
	ImageHeight  float64 // native background image height in pixels
}

// NewChartSpace builds a ChartSpace, rejecting non-positive dimensions.
func NewChartSpace(canvasWidth, canvasHeight, imageWidth, imageHeight int) (ChartSpace, error) {
	if canvasWidth <= 0 || canvasHeight <= 0 {
		return ChartSpace{}, errors.Newf("invalid canvas size %dx%d", canvasWidth, canvasHeight).
			Category(errors.CategoryValidation).
			Build()
	}
	if imageWidth <= 0 || imageHeight <= 0 {
		return ChartSpace{}, errors.Newf("invalid image size %dx%d", imageWidth, imageHeight).
			Category(errors.CategoryValidation).
			Build()
	}
	return ChartSpace{
		CanvasWidth:  float64(canvasWidth),
		CanvasHeight: float64(canvasHeight),
		ImageWidth:   float64(imageWidth),
		ImageHeight:  float64(imageHeight),
	}, nil
}

// ToCanvas maps native-image coordinates to canvas coordinates.
func (s ChartSpace) ToCanvas(x, y float64) (canvasX, canvasY float64) {
	return x * (s.CanvasWidth / s.ImageWidth), y * (s.CanvasHeight / s.ImageHeight)
}

// ToImage maps canvas coordinates to native-image coordinates. It is the
// exact inverse of ToCanvas.
func (s ChartSpace) ToImage(x, y float64) (imageX, imageY float64) {
	return x * (s.ImageWidth / s.CanvasWidth), y * (s.ImageHeight / s.CanvasHeight)
}

// InBounds reports whether a native-image coordinate lies within the image.
// Out-of-bounds marks are accepted by the editor; callers may use this to
// warn about them.
func (s ChartSpace) InBounds(x, y float64) bool {
	return x >= 0 && x <= s.ImageWidth && y >= 0 && y <= s.ImageHeight
}
