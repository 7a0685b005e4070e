// model.go this code defines the data model for the application
package datastore

import "time"

// Patient is the minimal parent record an odontogram hangs off.
type Patient struct {
	ID            uint   `gorm:"primaryKey"`
	HistoryNumber string `gorm:"index:idx_patients_history"`
	FirstName     string
	LastName      string `gorm:"index:idx_patients_lastname"`
	Document      string `gorm:"index:idx_patients_document"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Odontogram represents one dental charting session for a patient, of type
// "inicial" or "evolutivo".
type Odontogram struct {
	ID        uint   `gorm:"primaryKey"`
	PatientID uint   `gorm:"index:idx_odontograms_patient;not null"`
	Type      string `gorm:"type:varchar(20)"` // "inicial" or "evolutivo"
	Date      string `gorm:"index:idx_odontograms_date"`
	Notes     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Findings    []FindingRecord `gorm:"foreignKey:OdontogramID;constraint:OnDelete:CASCADE"`
	BudgetLines []BudgetLine    `gorm:"foreignKey:OdontogramID;constraint:OnDelete:CASCADE"`
	Radiographs []Radiograph    `gorm:"foreignKey:OdontogramID;constraint:OnDelete:CASCADE"`
}

// FindingRecord is the persisted shape of one charted finding. The natural
// key is (odontogram_id, tooth_number, surface); saves upsert on it.
// Coordinates are stored in native-image pixel units.
type FindingRecord struct {
	ID           uint     `gorm:"primaryKey"`
	OdontogramID uint     `gorm:"uniqueIndex:idx_findings_natural;not null"`
	ToothNumber  int      `gorm:"uniqueIndex:idx_findings_natural;not null"`
	Surface      string   `gorm:"uniqueIndex:idx_findings_natural;type:varchar(20);default:corona"`
	Estado       string   `gorm:"type:varchar(10)"` // lowercase treatment code
	Note         *string  `gorm:"type:text"`
	CoordX       *float64 // nullable, native-image pixels
	CoordY       *float64
	Color        string `gorm:"type:varchar(10)"` // "azul" or "rojo"
	IsPlanned    bool   // redundant with Color, kept for the stored shape
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BudgetLine represents one presupuesto row attached to a charting session.
type BudgetLine struct {
	ID           uint   `gorm:"primaryKey"`
	OdontogramID uint   `gorm:"index:idx_budget_odontogram;not null"`
	Piece        string `gorm:"type:varchar(10)"` // tooth or zone the line applies to
	Description  string
	Quantity     int
	UnitPrice    float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Total returns the line total.
func (b *BudgetLine) Total() float64 {
	return float64(b.Quantity) * b.UnitPrice
}

// Radiograph represents an attached radiograph image row. The file itself
// lives in the media directory; URL is the retrievable path.
type Radiograph struct {
	ID           uint   `gorm:"primaryKey"`
	OdontogramID uint   `gorm:"index:idx_radiographs_odontogram;not null"`
	FileName     string `gorm:"not null"`
	URL          string
	UploadedAt   time.Time `gorm:"index"`
}

// BudgetTotal sums the line totals of a budget.
func BudgetTotal(lines []BudgetLine) float64 {
	var total float64
	for i := range lines {
		total += lines[i].Total()
	}
	return total
}
