package odontogram

import (
	"github.com/odontosys/odontosys/internal/catalog"
	"github.com/odontosys/odontosys/internal/errors"
)

// Step identifies the wizard's position in the selection flow.
type Step int

const (
	StepIdle Step = iota
	StepTooth
	StepTreatment
	StepIntent
)

// String returns the step name for logs and messages.
func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepTooth:
		return "tooth-selection"
	case StepTreatment:
		return "treatment-selection"
	case StepIntent:
		return "intent-selection"
	default:
		return "unknown"
	}
}

// Armed carries the pending treatment after the wizard completes. The next
// canvas click materializes it into a finding.
type Armed struct {
	ToothNumber int
	Entry       catalog.Entry
	Intent      Intent
}

// Wizard drives the three step selection flow: pick a tooth, pick a
// treatment, pick an intent. Selecting the intent is the commit action; it
// immediately arms the canvas and exits the flow. Validation failures are
// recoverable, leave the state unchanged and surface as validation errors.
type Wizard struct {
	space ChartSpace

	step   Step
	tooth  int // 0 while unselected
	entry  *catalog.Entry
	intent Intent // empty while unselected

	armed *Armed
}

// NewWizard returns an idle wizard over the given chart space.
func NewWizard(space ChartSpace) *Wizard {
	return &Wizard{space: space}
}

// Step returns the current wizard step.
func (w *Wizard) Step() Step {
	return w.step
}

// Start begins the selection flow. Any previous arming is discarded.
func (w *Wizard) Start() {
	w.reset()
	w.step = StepTooth
}

// SelectTooth records the tooth choice at step one. Tooth numbers outside
// the fixed arches are rejected.
func (w *Wizard) SelectTooth(toothNumber int) error {
	if w.step != StepTooth {
		return errors.Newf("tooth selection not active in step %s", w.step).
			Category(errors.CategoryState).
			Build()
	}
	if !ValidTooth(toothNumber) {
		return errors.Newf("invalid tooth number %d", toothNumber).
			Category(errors.CategoryValidation).
			Build()
	}
	w.tooth = toothNumber
	return nil
}

// SelectTreatment records the catalog entry choice at step two.
func (w *Wizard) SelectTreatment(entry catalog.Entry) error {
	if w.step != StepTreatment {
		return errors.Newf("treatment selection not active in step %s", w.step).
			Category(errors.CategoryState).
			Build()
	}
	w.entry = &entry
	return nil
}

// SelectIntent records the intent at step three and immediately arms the
// canvas, exiting the wizard. There is no separate confirm action. The
// catalog permission flags are advisory here, matching the editor flow.
func (w *Wizard) SelectIntent(intent Intent) error {
	if w.step != StepIntent {
		return errors.Newf("intent selection not active in step %s", w.step).
			Category(errors.CategoryState).
			Build()
	}
	if intent != IntentExisting && intent != IntentPlanned {
		return errors.Newf("invalid intent %q", intent).
			Category(errors.CategoryValidation).
			Build()
	}
	w.intent = intent
	w.armed = &Armed{
		ToothNumber: w.tooth,
		Entry:       *w.entry,
		Intent:      intent,
	}
	w.step = StepIdle
	return nil
}

// Next advances to the following step. The transition is rejected with a
// validation error, leaving the state unchanged, when the current step has
// no selection.
func (w *Wizard) Next() error {
	switch w.step {
	case StepTooth:
		if w.tooth == 0 {
			return errors.ValidationError("seleccione un diente para continuar")
		}
		w.step = StepTreatment
	case StepTreatment:
		if w.entry == nil {
			return errors.ValidationError("seleccione un tratamiento para continuar")
		}
		w.step = StepIntent
	case StepIntent:
		if w.intent == "" {
			return errors.ValidationError("seleccione el estado del tratamiento")
		}
		// SelectIntent already armed and exited
	case StepIdle:
		return errors.Newf("wizard is not active").
			Category(errors.CategoryState).
			Build()
	}
	return nil
}

// Prev returns to the previous step keeping prior selections. At step one it
// is a no-op.
func (w *Wizard) Prev() {
	switch w.step {
	case StepTreatment:
		w.step = StepTooth
	case StepIntent:
		w.step = StepTreatment
	}
}

// Cancel discards all in-progress selections and any arming.
func (w *Wizard) Cancel() {
	w.reset()
}

// IsArmed reports whether a pending treatment is waiting for a canvas click.
func (w *Wizard) IsArmed() bool {
	return w.armed != nil
}

// Pending returns the armed treatment, if any.
func (w *Wizard) Pending() (Armed, bool) {
	if w.armed == nil {
		return Armed{}, false
	}
	return *w.armed, true
}

// Click consumes a canvas click at on-screen coordinates. While armed it
// converts the click to native-image coordinates and materializes exactly
// one finding, then disarms. Clicks while not armed are ignored.
func (w *Wizard) Click(screenX, screenY float64) (Finding, bool) {
	if w.armed == nil {
		return Finding{}, false
	}

	x, y := w.space.ToImage(screenX, screenY)
	f := Finding{
		ToothNumber:   w.armed.ToothNumber,
		Surface:       SurfaceCrown,
		TreatmentCode: w.armed.Entry.Code,
		DisplayName:   w.armed.Entry.Name,
		Icon:          w.armed.Entry.Icon,
		Intent:        w.armed.Intent,
		X:             x,
		Y:             y,
	}

	w.reset()
	return f, true
}

func (w *Wizard) reset() {
	w.step = StepIdle
	w.tooth = 0
	w.entry = nil
	w.intent = ""
	w.armed = nil
}
