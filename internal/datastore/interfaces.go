// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/odontosys/odontosys/internal/conf"
	"github.com/odontosys/odontosys/internal/errors"
)

// Interface abstracts the underlying database implementation and defines the
// operations the application needs.
type Interface interface {
	Open() error
	Close() error

	// patients
	SavePatient(patient *Patient) error
	GetPatient(id uint) (Patient, error)
	SearchPatients(query string, limit, offset int) ([]Patient, int64, error)

	// odontograms
	SaveOdontogram(og *Odontogram, findings []FindingRecord, budget []BudgetLine) error
	GetOdontogram(id uint) (Odontogram, error)
	ListOdontogramsByPatient(patientID uint) ([]Odontogram, error)
	DeleteOdontogram(id uint) error
	GetFindings(odontogramID uint) ([]FindingRecord, error)

	// radiographs
	SaveRadiograph(r *Radiograph) error
	ListRadiographs(odontogramID uint) ([]Radiograph, error)
	GetRadiograph(id uint) (Radiograph, error)
	DeleteRadiograph(id uint) error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// Close closes the underlying database connection.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return fmt.Errorf("getting database handle: %w", err)
	}
	return sqlDB.Close()
}

// SavePatient creates or updates a patient record.
func (ds *DataStore) SavePatient(patient *Patient) error {
	if err := ds.DB.Save(patient).Error; err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("operation", "save_patient").
			Build()
	}
	return nil
}

// GetPatient retrieves a patient by id.
func (ds *DataStore) GetPatient(id uint) (Patient, error) {
	var patient Patient
	if err := ds.DB.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Patient{}, errors.NotFoundError("patient", id)
		}
		return Patient{}, errors.New(err).Category(errors.CategoryDatabase).Build()
	}
	return patient, nil
}

// SearchPatients returns patients matching the query against name, document
// and history number, with the total count for pagination.
func (ds *DataStore) SearchPatients(query string, limit, offset int) ([]Patient, int64, error) {
	var patients []Patient
	var total int64

	db := ds.DB.Model(&Patient{})
	if query != "" {
		like := "%" + query + "%"
		db = db.Where(
			"first_name LIKE ? OR last_name LIKE ? OR document LIKE ? OR history_number LIKE ?",
			like, like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.New(err).Category(errors.CategoryDatabase).Build()
	}

	if err := db.Order("last_name, first_name").Limit(limit).Offset(offset).Find(&patients).Error; err != nil {
		return nil, 0, errors.New(err).Category(errors.CategoryDatabase).Build()
	}

	return patients, total, nil
}

// SaveOdontogram stores a charting session with its findings and budget
// lines as a single transaction. Findings are true upserts on the natural
// key (odontogram_id, tooth_number, surface); rows absent from the incoming
// list are removed so the stored state mirrors the editor list. A failure
// anywhere rolls the whole save back.
func (ds *DataStore) SaveOdontogram(og *Odontogram, findings []FindingRecord, budget []BudgetLine) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(og).Error; err != nil {
			return fmt.Errorf("saving odontogram: %w", err)
		}

		// Upsert each finding on its natural key
		for i := range findings {
			findings[i].ID = 0
			findings[i].OdontogramID = og.ID
			if findings[i].Surface == "" {
				findings[i].Surface = "corona"
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "odontogram_id"},
					{Name: "tooth_number"},
					{Name: "surface"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"estado", "note", "coord_x", "coord_y", "color", "is_planned", "updated_at",
				}),
			}).Create(&findings[i]).Error
			if err != nil {
				return fmt.Errorf("upserting finding for tooth %d: %w", findings[i].ToothNumber, err)
			}
		}

		// Remove stored findings no longer present in the list, matched on
		// the natural key
		keep := make(map[string]bool, len(findings))
		for i := range findings {
			keep[fmt.Sprintf("%d/%s", findings[i].ToothNumber, findings[i].Surface)] = true
		}
		var stored []FindingRecord
		if err := tx.Where("odontogram_id = ?", og.ID).Find(&stored).Error; err != nil {
			return fmt.Errorf("listing stored findings: %w", err)
		}
		var stale []uint
		for i := range stored {
			if !keep[fmt.Sprintf("%d/%s", stored[i].ToothNumber, stored[i].Surface)] {
				stale = append(stale, stored[i].ID)
			}
		}
		if len(stale) > 0 {
			if err := tx.Delete(&FindingRecord{}, stale).Error; err != nil {
				return fmt.Errorf("pruning findings: %w", err)
			}
		}

		// Budget lines are replaced wholesale inside the same transaction
		if err := tx.Where("odontogram_id = ?", og.ID).Delete(&BudgetLine{}).Error; err != nil {
			return fmt.Errorf("clearing budget lines: %w", err)
		}
		for i := range budget {
			budget[i].ID = 0
			budget[i].OdontogramID = og.ID
			if err := tx.Create(&budget[i]).Error; err != nil {
				return fmt.Errorf("saving budget line: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("operation", "save_odontogram").
			Context("odontogram_id", og.ID).
			Build()
	}
	return nil
}

// GetOdontogram retrieves a charting session with its findings, budget lines
// and radiographs.
func (ds *DataStore) GetOdontogram(id uint) (Odontogram, error) {
	var og Odontogram
	err := ds.DB.
		Preload("Findings").
		Preload("BudgetLines").
		Preload("Radiographs").
		First(&og, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Odontogram{}, errors.NotFoundError("odontogram", id)
		}
		return Odontogram{}, errors.New(err).Category(errors.CategoryDatabase).Build()
	}
	return og, nil
}

// ListOdontogramsByPatient returns the patient's charting sessions, newest
// first, without children.
func (ds *DataStore) ListOdontogramsByPatient(patientID uint) ([]Odontogram, error) {
	var ogs []Odontogram
	err := ds.DB.
		Where("patient_id = ?", patientID).
		Order("date DESC, id DESC").
		Find(&ogs).Error
	if err != nil {
		return nil, errors.New(err).Category(errors.CategoryDatabase).Build()
	}
	return ogs, nil
}

// DeleteOdontogram removes a charting session and its children.
func (ds *DataStore) DeleteOdontogram(id uint) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("odontogram_id = ?", id).Delete(&FindingRecord{}).Error; err != nil {
			return fmt.Errorf("deleting findings for odontogram %d: %w", id, err)
		}
		if err := tx.Where("odontogram_id = ?", id).Delete(&BudgetLine{}).Error; err != nil {
			return fmt.Errorf("deleting budget lines for odontogram %d: %w", id, err)
		}
		if err := tx.Where("odontogram_id = ?", id).Delete(&Radiograph{}).Error; err != nil {
			return fmt.Errorf("deleting radiographs for odontogram %d: %w", id, err)
		}
		if err := tx.Delete(&Odontogram{}, id).Error; err != nil {
			return fmt.Errorf("deleting odontogram %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return errors.New(err).Category(errors.CategoryDatabase).Build()
	}
	return nil
}

// GetFindings returns the stored findings of a charting session in tooth
// order.
func (ds *DataStore) GetFindings(odontogramID uint) ([]FindingRecord, error) {
	var findings []FindingRecord
	err := ds.DB.
		Where("odontogram_id = ?", odontogramID).
		Order("tooth_number, surface").
		Find(&findings).Error
	if err != nil {
		return nil, errors.New(err).Category(errors.CategoryDatabase).Build()
	}
	return findings, nil
}

// SaveRadiograph inserts an attached radiograph row.
func (ds *DataStore) SaveRadiograph(r *Radiograph) error {
	if err := ds.DB.Create(r).Error; err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("operation", "save_radiograph").
			Build()
	}
	return nil
}

// ListRadiographs returns the radiographs attached to a charting session.
func (ds *DataStore) ListRadiographs(odontogramID uint) ([]Radiograph, error) {
	var rads []Radiograph
	err := ds.DB.
		Where("odontogram_id = ?", odontogramID).
		Order("uploaded_at DESC").
		Find(&rads).Error
	if err != nil {
		return nil, errors.New(err).Category(errors.CategoryDatabase).Build()
	}
	return rads, nil
}

// GetRadiograph retrieves one radiograph row by id.
func (ds *DataStore) GetRadiograph(id uint) (Radiograph, error) {
	var rad Radiograph
	if err := ds.DB.First(&rad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Radiograph{}, errors.NotFoundError("radiograph", id)
		}
		return Radiograph{}, errors.New(err).Category(errors.CategoryDatabase).Build()
	}
	return rad, nil
}

// DeleteRadiograph removes one radiograph row by id.
func (ds *DataStore) DeleteRadiograph(id uint) error {
	if err := ds.DB.Delete(&Radiograph{}, id).Error; err != nil {
		return errors.New(err).Category(errors.CategoryDatabase).Build()
	}
	return nil
}
