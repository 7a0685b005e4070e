// Package odontogram implements the dental chart annotation model: findings,
// the canvas coordinate transform, the in-memory collection editor and the
// three step selection wizard that arms the canvas for marking.
package odontogram

import "strings"

// Intent tells whether a finding is a pre-existing condition or a planned
// treatment. Charts render existing in blue and planned in red.
type Intent string

const (
	IntentExisting Intent = "existing"
	IntentPlanned  Intent = "planned"
)

// Stored color values, kept compatible with the persisted row format.
const (
	ColorExisting = "azul"
	ColorPlanned  = "rojo"
)

// SurfaceCrown is the default tooth surface when none is specified.
const SurfaceCrown = "corona"

// Color returns the stored color string for the intent.
func (i Intent) Color() string {
	if i == IntentPlanned {
		return ColorPlanned
	}
	return ColorExisting
}

// IntentFromColor maps a stored color string back to an intent.
func IntentFromColor(color string) Intent {
	if strings.EqualFold(color, ColorPlanned) {
		return IntentPlanned
	}
	return IntentExisting
}

// Finding represents one marked condition or treatment on one tooth.
// X and Y are pixel coordinates in the native resolution of the background
// chart image, not the displayed canvas, so marks stay correctly positioned
// at any on-screen scale.
type Finding struct {
	ToothNumber   int     // FDI two-digit tooth identifier
	Surface       string  // tooth surface, SurfaceCrown when unspecified
	TreatmentCode string  // catalog entry code, uppercase
	DisplayName   string  // denormalized catalog name, captured at creation
	Icon          string  // denormalized catalog glyph
	Intent        Intent  // existing or planned
	X             float64 // native-image pixel coordinate
	Y             float64 // native-image pixel coordinate
	Note          string  // optional free text, shared per tooth
}

// UpperArch and LowerArch are the fixed adult FDI tooth sets offered by the
// selection wizard, 16 teeth each.
var (
	UpperArch = []int{18, 17, 16, 15, 14, 13, 12, 11, 21, 22, 23, 24, 25, 26, 27, 28}
	LowerArch = []int{48, 47, 46, 45, 44, 43, 42, 41, 31, 32, 33, 34, 35, 36, 37, 38}
)

// ValidTooth reports whether n is a member of either fixed arch.
func ValidTooth(n int) bool {
	for _, t := range UpperArch {
		if t == n {
			return true
		}
	}
	for _, t := range LowerArch {
		if t == n {
			return true
		}
	}
	return false
}
