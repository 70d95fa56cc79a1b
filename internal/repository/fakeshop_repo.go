package repository

import (
	"errors"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"gorm.io/gorm"
)

// FakeShopRecords returns the base fake-shop record query
func FakeShopRecords() *gorm.DB {
	return db.Model(&model.FakeShopRecord{})
}

// GetFakeShopRecordByID returns a fake-shop record with its website and
// evidence collections, nil when not found.
func GetFakeShopRecordByID(id uint) (*model.FakeShopRecord, error) {
	var record model.FakeShopRecord

	err := db.
		Preload("Website").
		Preload("Website.RiskScore").
		Preload("Website.AssignedTo").
		Preload("SearchResults").
		Preload("CompanyNames").
		Preload("WebsiteImages").
		Preload("WebsiteTexts").
		Preload("LanguageExamples").
		First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// GetFakeShopRecordByWebsiteID returns the record linked to a website, nil
// when the website has none.
func GetFakeShopRecordByWebsiteID(websiteID uint) (*model.FakeShopRecord, error) {
	var record model.FakeShopRecord

	err := db.Where("website_id = ?", websiteID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// CreateFakeShopRecord creates a record stamped with the acting user
func CreateFakeShopRecord(tx *gorm.DB, record *model.FakeShopRecord, actorID uint) error {
	record.CreatedByID = &actorID
	record.ModifiedByID = &actorID

	return tx.Create(record).Error
}

// UpdateFakeShopRecord persists changes to a record stamped with the acting user
func UpdateFakeShopRecord(tx *gorm.DB, record *model.FakeShopRecord, actorID uint) error {
	record.ModifiedByID = &actorID

	return tx.Save(record).Error
}

// DeleteFakeShopRecord deletes a record and its evidence rows and reports
// whether the record existed.
func DeleteFakeShopRecord(id uint) (bool, error) {
	var removed bool

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.FakeShopRecord{}, id)
		if result.Error != nil {
			return result.Error
		}

		removed = result.RowsAffected > 0
		if !removed {
			return nil
		}

		for _, child := range []any{
			&model.SearchResult{},
			&model.CompanyName{},
			&model.WebsiteImage{},
			&model.WebsiteText{},
			&model.LanguageExample{},
		} {
			if err := tx.Where("fake_shop_record_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		return nil
	})

	return removed, err
}

// ReplaceFakeShopEvidence replaces one evidence collection of a record.
// Formset rows arrive as full sets, existing rows are rewritten.
func ReplaceFakeShopEvidence(tx *gorm.DB, recordID uint, child any, rows any) error {
	if err := tx.Where("fake_shop_record_id = ?", recordID).Delete(child).Error; err != nil {
		return err
	}

	return tx.Create(rows).Error
}
