package odontogram

import (
	"strings"

	"github.com/odontosys/odontosys/internal/catalog"
)

// Editor owns the ordered finding list for one charting session. All
// mutation goes through its methods; Findings returns a copied snapshot, so
// callers never alias the internal slice. Tooth notes are kept separately
// because all findings on one tooth share at most one note.
type Editor struct {
	findings []Finding
	notes    map[int]string
}

// NewEditor returns an empty editor.
func NewEditor() *Editor {
	return &Editor{
		notes: make(map[int]string),
	}
}

// Add appends a finding. Duplicates by tooth and surface are retained in
// memory; the datastore collapses them onto the natural key at save time.
// An existing note for the finding's tooth is adopted.
func (e *Editor) Add(f Finding) {
	if f.Surface == "" {
		f.Surface = SurfaceCrown
	}
	if note, ok := e.notes[f.ToothNumber]; ok && f.Note == "" {
		f.Note = note
	}
	e.findings = append(e.findings, f)
}

// Remove deletes every finding matching the tooth and surface pair and
// returns how many were removed. Findings on other surfaces of the same
// tooth are untouched.
func (e *Editor) Remove(toothNumber int, surface string) int {
	if surface == "" {
		surface = SurfaceCrown
	}
	kept := e.findings[:0]
	removed := 0
	for _, f := range e.findings {
		if f.ToothNumber == toothNumber && f.Surface == surface {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	e.findings = kept
	return removed
}

// SetNote attaches a note to a tooth. The note is shared by every finding on
// that tooth, current and future.
func (e *Editor) SetNote(toothNumber int, note string) {
	if note == "" {
		delete(e.notes, toothNumber)
	} else {
		e.notes[toothNumber] = note
	}
	for i := range e.findings {
		if e.findings[i].ToothNumber == toothNumber {
			e.findings[i].Note = note
		}
	}
}

// Note returns the note attached to a tooth, if any.
func (e *Editor) Note(toothNumber int) string {
	return e.notes[toothNumber]
}

// Findings returns a copied snapshot of the finding list in insertion order.
func (e *Editor) Findings() []Finding {
	out := make([]Finding, len(e.findings))
	copy(out, e.findings)
	return out
}

// Len returns the number of findings held.
func (e *Editor) Len() int {
	return len(e.findings)
}

// Clear discards all findings and notes.
func (e *Editor) Clear() {
	e.findings = nil
	e.notes = make(map[int]string)
}

// FindingFromStored rebuilds a Finding from its persisted row shape. The
// lowercase estado code is resolved through the catalog to recover the
// display name and icon; unknown codes keep the raw code uppercased as the
// label with a blank icon.
func FindingFromStored(toothNumber int, surface, estado, note string, x, y float64, isPlanned bool) Finding {
	if surface == "" {
		surface = SurfaceCrown
	}

	intent := IntentExisting
	if isPlanned {
		intent = IntentPlanned
	}

	f := Finding{
		ToothNumber: toothNumber,
		Surface:     surface,
		Intent:      intent,
		X:           x,
		Y:           y,
		Note:        note,
	}

	if entry, ok := catalog.FindByCode(estado); ok {
		f.TreatmentCode = entry.Code
		f.DisplayName = entry.Name
		f.Icon = entry.Icon
	} else {
		f.TreatmentCode = strings.ToUpper(estado)
		f.DisplayName = strings.ToUpper(estado)
	}

	return f
}
