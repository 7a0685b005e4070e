package odontogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/odontosys/internal/catalog"
	"github.com/odontosys/odontosys/internal/errors"
)

func testSpace(t *testing.T) ChartSpace {
	t.Helper()
	space, err := NewChartSpace(700, 873, 1000, 1200)
	require.NoError(t, err)
	return space
}

func caries(t *testing.T) catalog.Entry {
	t.Helper()
	entry, ok := catalog.FindByCode("CAR")
	require.True(t, ok)
	return entry
}

// runWizard walks the full flow up to arming.
func runWizard(t *testing.T, w *Wizard, tooth int, entry catalog.Entry, intent Intent) {
	t.Helper()
	w.Start()
	require.NoError(t, w.SelectTooth(tooth))
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectTreatment(entry))
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectIntent(intent))
}

func TestWizardFullFlowArms(t *testing.T) {
	t.Parallel()

	w := NewWizard(testSpace(t))
	assert.Equal(t, StepIdle, w.Step())
	assert.False(t, w.IsArmed())

	runWizard(t, w, 16, caries(t), IntentPlanned)

	// selecting the intent is the commit action, no separate confirm
	assert.Equal(t, StepIdle, w.Step())
	require.True(t, w.IsArmed())

	armed, ok := w.Pending()
	require.True(t, ok)
	assert.Equal(t, 16, armed.ToothNumber)
	assert.Equal(t, "CAR", armed.Entry.Code)
	assert.Equal(t, IntentPlanned, armed.Intent)
}

func TestWizardNextWithoutSelectionIsRejected(t *testing.T) {
	t.Parallel()

	w := NewWizard(testSpace(t))
	w.Start()

	err := w.Next()
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, StepTooth, w.Step(), "failed transition must not change state")

	require.NoError(t, w.SelectTooth(11))
	require.NoError(t, w.Next())

	err = w.Next()
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, StepTreatment, w.Step())
}

func TestWizardRejectsInvalidTooth(t *testing.T) {
	t.Parallel()

	w := NewWizard(testSpace(t))
	w.Start()

	for _, n := range []int{0, 10, 19, 29, 50, 99, -11} {
		err := w.SelectTooth(n)
		assert.Error(t, err, "tooth %d must be rejected", n)
	}

	assert.NoError(t, w.SelectTooth(48))
}

func TestWizardRejectsInvalidIntent(t *testing.T) {
	t.Parallel()

	w := NewWizard(testSpace(t))
	w.Start()
	require.NoError(t, w.SelectTooth(16))
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectTreatment(caries(t)))
	require.NoError(t, w.Next())

	err := w.SelectIntent(Intent("maybe"))
	require.Error(t, err)
	assert.Equal(t, StepIntent, w.Step())
	assert.False(t, w.IsArmed())
}

func TestWizardPrevKeepsSelections(t *testing.T) {
	t.Parallel()

	w := NewWizard(testSpace(t))
	w.Start()
	require.NoError(t, w.SelectTooth(24))
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectTreatment(caries(t)))
	require.NoError(t, w.Next())

	w.Prev()
	assert.Equal(t, StepTreatment, w.Step())
	w.Prev()
	assert.Equal(t, StepTooth, w.Step())
	// prior selections survive, the flow can go straight forward again
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	assert.Equal(t, StepIntent, w.Step())

	// prev at step one is a no-op
	w.Prev()
	w.Prev()
	w.Prev()
}

func TestWizardCancelDiscardsEverything(t *testing.T) {
	t.Parallel()

	w := NewWizard(testSpace(t))
	runWizard(t, w, 16, caries(t), IntentExisting)
	require.True(t, w.IsArmed())

	w.Cancel()
	assert.False(t, w.IsArmed())
	assert.Equal(t, StepIdle, w.Step())
	_, ok := w.Pending()
	assert.False(t, ok)
}

func TestClickWhileArmedCreatesExactlyOneFinding(t *testing.T) {
	t.Parallel()

	w := NewWizard(testSpace(t))
	runWizard(t, w, 16, caries(t), IntentPlanned)

	f, ok := w.Click(350, 300)
	require.True(t, ok)

	assert.Equal(t, 16, f.ToothNumber)
	assert.Equal(t, SurfaceCrown, f.Surface)
	assert.Equal(t, "CAR", f.TreatmentCode)
	assert.Equal(t, "Caries", f.DisplayName)
	assert.Equal(t, IntentPlanned, f.Intent)
	// stored coordinates are in native-image space
	assert.InDelta(t, 500.0, f.X, 1e-9)
	assert.InDelta(t, 412.371134, f.Y, 1e-5)

	// arming is single-shot
	assert.False(t, w.IsArmed())
	_, ok = w.Click(350, 300)
	assert.False(t, ok)
}

func TestClickWhileIdleIsIgnored(t *testing.T) {
	t.Parallel()

	w := NewWizard(testSpace(t))
	_, ok := w.Click(100, 100)
	assert.False(t, ok)

	// mid-flow clicks are also ignored, the flow is unaffected
	w.Start()
	require.NoError(t, w.SelectTooth(16))
	_, ok = w.Click(100, 100)
	assert.False(t, ok)
	assert.Equal(t, StepTooth, w.Step())
}

func TestStartDiscardsPreviousArming(t *testing.T) {
	t.Parallel()

	w := NewWizard(testSpace(t))
	runWizard(t, w, 16, caries(t), IntentPlanned)
	require.True(t, w.IsArmed())

	w.Start()
	assert.False(t, w.IsArmed())
	assert.Equal(t, StepTooth, w.Step())
}

func TestIntentColorMapping(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ColorExisting, IntentExisting.Color())
	assert.Equal(t, ColorPlanned, IntentPlanned.Color())
	assert.Equal(t, IntentPlanned, IntentFromColor("rojo"))
	assert.Equal(t, IntentPlanned, IntentFromColor("ROJO"))
	assert.Equal(t, IntentExisting, IntentFromColor("azul"))
	assert.Equal(t, IntentExisting, IntentFromColor(""))
}
