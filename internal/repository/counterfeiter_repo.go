package repository

import (
	"errors"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"gorm.io/gorm"
)

// CounterfeiterRecords returns the base counterfeiter record query
func CounterfeiterRecords() *gorm.DB {
	return db.Model(&model.CounterfeiterRecord{})
}

// GetCounterfeiterRecordByID returns a counterfeiter record with its website
// and evidence collections, nil when not found.
func GetCounterfeiterRecordByID(id uint) (*model.CounterfeiterRecord, error) {
	var record model.CounterfeiterRecord

	err := db.
		Preload("Website").
		Preload("Website.RiskScore").
		Preload("Website.AssignedTo").
		Preload("ProductExamples").
		Preload("LanguageURLs").
		First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// GetCounterfeiterRecordByWebsiteID returns the record linked to a website,
// nil when the website has none.
func GetCounterfeiterRecordByWebsiteID(websiteID uint) (*model.CounterfeiterRecord, error) {
	var record model.CounterfeiterRecord

	err := db.Where("website_id = ?", websiteID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// CreateCounterfeiterRecord creates a record stamped with the acting user
func CreateCounterfeiterRecord(tx *gorm.DB, record *model.CounterfeiterRecord, actorID uint) error {
	record.CreatedByID = &actorID
	record.ModifiedByID = &actorID

	return tx.Create(record).Error
}

// UpdateCounterfeiterRecord persists changes to a record stamped with the
// acting user.
func UpdateCounterfeiterRecord(tx *gorm.DB, record *model.CounterfeiterRecord, actorID uint) error {
	record.ModifiedByID = &actorID

	return tx.Save(record).Error
}

// DeleteCounterfeiterRecord deletes a record and its evidence rows and
// reports whether the record existed.
func DeleteCounterfeiterRecord(id uint) (bool, error) {
	var removed bool

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.CounterfeiterRecord{}, id)
		if result.Error != nil {
			return result.Error
		}

		removed = result.RowsAffected > 0
		if !removed {
			return nil
		}

		for _, child := range []any{
			&model.ProductExample{},
			&model.LanguageURL{},
		} {
			if err := tx.Where("counterfeiter_record_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		return nil
	})

	return removed, err
}

// ReplaceCounterfeiterEvidence replaces one evidence collection of a record
func ReplaceCounterfeiterEvidence(tx *gorm.DB, recordID uint, child any, rows any) error {
	if err := tx.Where("counterfeiter_record_id = ?", recordID).Delete(child).Error; err != nil {
		return err
	}

	return tx.Create(rows).Error
}
