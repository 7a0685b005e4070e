package datastore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/odontosys/internal/catalog"
	"github.com/odontosys/odontosys/internal/conf"
	"github.com/odontosys/odontosys/internal/errors"
	"github.com/odontosys/odontosys/internal/odontogram"
)

// newTestStore opens a SQLite datastore in a per-test temp directory.
func newTestStore(t *testing.T) Interface {
	t.Helper()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = filepath.Join(t.TempDir(), "odontosys.db")

	store := New(settings)
	require.NotNil(t, store)
	require.NoError(t, store.Open())
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

// newTestPatient saves a patient and returns its id.
func newTestPatient(t *testing.T, store Interface) uint {
	t.Helper()
	p := Patient{FirstName: "María", LastName: "Quispe", Document: "40123456"}
	require.NoError(t, store.SavePatient(&p))
	require.NotZero(t, p.ID)
	return p.ID
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func TestSavePatientAndSearch(t *testing.T) {
	store := newTestStore(t)

	patients := []Patient{
		{FirstName: "María", LastName: "Quispe", Document: "40123456", HistoryNumber: "H-001"},
		{FirstName: "José", LastName: "Mamani", Document: "40999888", HistoryNumber: "H-002"},
	}
	for i := range patients {
		require.NoError(t, store.SavePatient(&patients[i]))
	}

	got, err := store.GetPatient(patients[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Quispe", got.LastName)

	results, total, err := store.SearchPatients("Quispe", 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, "María", results[0].FirstName)

	// empty query lists everyone
	_, total, err = store.SearchPatients("", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, err = store.GetPatient(99999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestSaveOdontogramRoundTrip(t *testing.T) {
	store := newTestStore(t)
	patientID := newTestPatient(t, store)

	og := Odontogram{PatientID: patientID, Type: "inicial", Date: "2026-09-01"}
	findings := []FindingRecord{
		{ToothNumber: 16, Surface: "corona", Estado: "car", Note: strPtr("profunda"),
			CoordX: f64Ptr(500), CoordY: f64Ptr(412.4), Color: "rojo", IsPlanned: true},
		{ToothNumber: 11, Surface: "corona", Estado: "exo",
			CoordX: f64Ptr(200), CoordY: f64Ptr(100), Color: "rojo", IsPlanned: true},
	}
	budget := []BudgetLine{
		{Piece: "16", Description: "Curación con resina", Quantity: 1, UnitPrice: 120},
		{Piece: "11", Description: "Extracción simple", Quantity: 1, UnitPrice: 80},
	}
	require.NoError(t, store.SaveOdontogram(&og, findings, budget))
	require.NotZero(t, og.ID)

	got, err := store.GetOdontogram(og.ID)
	require.NoError(t, err)
	assert.Equal(t, "inicial", got.Type)
	require.Len(t, got.Findings, 2)
	require.Len(t, got.BudgetLines, 2)
	assert.Equal(t, 200.0, BudgetTotal(got.BudgetLines))

	stored, err := store.GetFindings(og.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	// GetFindings orders by tooth number
	assert.Equal(t, 11, stored[0].ToothNumber)
	assert.Equal(t, 16, stored[1].ToothNumber)
	assert.Equal(t, "car", stored[1].Estado)
	require.NotNil(t, stored[1].Note)
	assert.Equal(t, "profunda", *stored[1].Note)
}

func TestSaveOdontogramUpsertsOnNaturalKey(t *testing.T) {
	store := newTestStore(t)
	patientID := newTestPatient(t, store)

	og := Odontogram{PatientID: patientID, Type: "inicial", Date: "2026-09-01"}
	first := []FindingRecord{
		{ToothNumber: 16, Surface: "corona", Estado: "car",
			CoordX: f64Ptr(500), CoordY: f64Ptr(412.4), Color: "azul", IsPlanned: false},
	}
	require.NoError(t, store.SaveOdontogram(&og, first, nil))

	// saving the same natural key again updates the row in place
	second := []FindingRecord{
		{ToothNumber: 16, Surface: "corona", Estado: "rc",
			CoordX: f64Ptr(510), CoordY: f64Ptr(400), Color: "rojo", IsPlanned: true},
	}
	require.NoError(t, store.SaveOdontogram(&og, second, nil))

	stored, err := store.GetFindings(og.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1, "upsert must not duplicate the natural key")
	assert.Equal(t, "rc", stored[0].Estado)
	assert.Equal(t, "rojo", stored[0].Color)
	assert.True(t, stored[0].IsPlanned)
	assert.Equal(t, 510.0, *stored[0].CoordX)
}

func TestSaveOdontogramPrunesAbsentFindings(t *testing.T) {
	store := newTestStore(t)
	patientID := newTestPatient(t, store)

	og := Odontogram{PatientID: patientID, Type: "inicial", Date: "2026-09-01"}
	initial := []FindingRecord{
		{ToothNumber: 16, Surface: "corona", Estado: "car", Color: "azul"},
		{ToothNumber: 17, Surface: "corona", Estado: "am", Color: "azul"},
		{ToothNumber: 16, Surface: "mesial", Estado: "rc", Color: "rojo", IsPlanned: true},
	}
	require.NoError(t, store.SaveOdontogram(&og, initial, nil))

	// drop tooth 17 and the mesial surface of 16
	reduced := []FindingRecord{
		{ToothNumber: 16, Surface: "corona", Estado: "car", Color: "azul"},
	}
	require.NoError(t, store.SaveOdontogram(&og, reduced, nil))

	stored, err := store.GetFindings(og.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 16, stored[0].ToothNumber)
	assert.Equal(t, "corona", stored[0].Surface)

	// an empty list clears the chart
	require.NoError(t, store.SaveOdontogram(&og, nil, nil))
	stored, err = store.GetFindings(og.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSaveOdontogramReplacesBudget(t *testing.T) {
	store := newTestStore(t)
	patientID := newTestPatient(t, store)

	og := Odontogram{PatientID: patientID, Type: "evolutivo", Date: "2026-09-01"}
	require.NoError(t, store.SaveOdontogram(&og, nil, []BudgetLine{
		{Description: "Limpieza", Quantity: 1, UnitPrice: 50},
		{Description: "Radiografía", Quantity: 2, UnitPrice: 25},
	}))

	require.NoError(t, store.SaveOdontogram(&og, nil, []BudgetLine{
		{Description: "Limpieza", Quantity: 1, UnitPrice: 60},
	}))

	got, err := store.GetOdontogram(og.ID)
	require.NoError(t, err)
	require.Len(t, got.BudgetLines, 1)
	assert.Equal(t, 60.0, BudgetTotal(got.BudgetLines))
}

func TestGetOdontogramNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetOdontogram(12345)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestListOdontogramsByPatientNewestFirst(t *testing.T) {
	store := newTestStore(t)
	patientID := newTestPatient(t, store)

	for _, date := range []string{"2026-01-10", "2026-06-15", "2026-03-01"} {
		og := Odontogram{PatientID: patientID, Type: "evolutivo", Date: date}
		require.NoError(t, store.SaveOdontogram(&og, nil, nil))
	}

	ogs, err := store.ListOdontogramsByPatient(patientID)
	require.NoError(t, err)
	require.Len(t, ogs, 3)
	assert.Equal(t, "2026-06-15", ogs[0].Date)
	assert.Equal(t, "2026-03-01", ogs[1].Date)
	assert.Equal(t, "2026-01-10", ogs[2].Date)

	// other patients see nothing
	other, err := store.ListOdontogramsByPatient(patientID + 100)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteOdontogramRemovesChildren(t *testing.T) {
	store := newTestStore(t)
	patientID := newTestPatient(t, store)

	og := Odontogram{PatientID: patientID, Type: "inicial", Date: "2026-09-01"}
	require.NoError(t, store.SaveOdontogram(&og,
		[]FindingRecord{{ToothNumber: 16, Surface: "corona", Estado: "car", Color: "azul"}},
		[]BudgetLine{{Description: "Curación", Quantity: 1, UnitPrice: 100}}))

	require.NoError(t, store.DeleteOdontogram(og.ID))

	_, err := store.GetOdontogram(og.ID)
	assert.True(t, errors.IsNotFound(err))

	stored, err := store.GetFindings(og.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRadiographLifecycle(t *testing.T) {
	store := newTestStore(t)
	patientID := newTestPatient(t, store)

	og := Odontogram{PatientID: patientID, Type: "inicial", Date: "2026-09-01"}
	require.NoError(t, store.SaveOdontogram(&og, nil, nil))

	rad := Radiograph{OdontogramID: og.ID, FileName: "rx_panoramica.png"}
	require.NoError(t, store.SaveRadiograph(&rad))
	require.NotZero(t, rad.ID)

	rads, err := store.ListRadiographs(og.ID)
	require.NoError(t, err)
	require.Len(t, rads, 1)

	got, err := store.GetRadiograph(rad.ID)
	require.NoError(t, err)
	assert.Equal(t, "rx_panoramica.png", got.FileName)

	require.NoError(t, store.DeleteRadiograph(rad.ID))
	_, err = store.GetRadiograph(rad.ID)
	assert.True(t, errors.IsNotFound(err))
}

// TestChartedClickPersistsAsStoredRow walks the full path from an armed
// wizard click to the stored row shape.
func TestChartedClickPersistsAsStoredRow(t *testing.T) {
	store := newTestStore(t)
	patientID := newTestPatient(t, store)

	space, err := odontogram.NewChartSpace(700, 873, 1000, 1200)
	require.NoError(t, err)

	w := odontogram.NewWizard(space)
	w.Start()
	require.NoError(t, w.SelectTooth(16))
	require.NoError(t, w.Next())
	treatment, ok := catalog.FindByCode("CAR")
	require.True(t, ok)
	require.NoError(t, w.SelectTreatment(treatment))
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectIntent(odontogram.IntentPlanned))

	finding, ok := w.Click(350, 300)
	require.True(t, ok)

	og := Odontogram{PatientID: patientID, Type: "inicial", Date: "2026-09-01"}
	rec := ToRecord(0, &finding)
	require.NoError(t, store.SaveOdontogram(&og, []FindingRecord{rec}, nil))

	stored, err := store.GetFindings(og.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	row := stored[0]
	assert.Equal(t, 16, row.ToothNumber)
	assert.Equal(t, "corona", row.Surface)
	assert.Equal(t, "car", row.Estado, "estado is the lowercase treatment code")
	assert.Equal(t, "rojo", row.Color)
	assert.True(t, row.IsPlanned)
	require.NotNil(t, row.CoordX)
	require.NotNil(t, row.CoordY)
	assert.InDelta(t, 500.0, *row.CoordX, 1e-9)
	assert.InDelta(t, 412.371134, *row.CoordY, 1e-5)

	// and the row rebuilds the same in-memory finding
	rebuilt := FromRecord(&row)
	assert.Equal(t, "CAR", rebuilt.TreatmentCode)
	assert.Equal(t, "Caries", rebuilt.DisplayName)
	assert.Equal(t, odontogram.IntentPlanned, rebuilt.Intent)
}
