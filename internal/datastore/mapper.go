package datastore

import (
	"strings"

	"github.com/odontosys/odontosys/internal/odontogram"
)

// ToRecord converts an in-memory finding to its stored row shape. The
// treatment code is stored lowercase, the intent doubles as the color string
// and the redundant planned flag.
func ToRecord(odontogramID uint, f *odontogram.Finding) FindingRecord {
	rec := FindingRecord{
		OdontogramID: odontogramID,
		ToothNumber:  f.ToothNumber,
		Surface:      f.Surface,
		Estado:       strings.ToLower(f.TreatmentCode),
		Color:        f.Intent.Color(),
		IsPlanned:    f.Intent == odontogram.IntentPlanned,
	}
	if rec.Surface == "" {
		rec.Surface = odontogram.SurfaceCrown
	}
	if f.Note != "" {
		note := f.Note
		rec.Note = &note
	}
	x, y := f.X, f.Y
	rec.CoordX = &x
	rec.CoordY = &y
	return rec
}

// FromRecord rebuilds an in-memory finding from a stored row, resolving the
// estado code through the catalog for display name and icon.
func FromRecord(rec *FindingRecord) odontogram.Finding {
	var note string
	if rec.Note != nil {
		note = *rec.Note
	}
	var x, y float64
	if rec.CoordX != nil {
		x = *rec.CoordX
	}
	if rec.CoordY != nil {
		y = *rec.CoordY
	}
	return odontogram.FindingFromStored(rec.ToothNumber, rec.Surface, rec.Estado, note, x, y, rec.IsPlanned)
}
