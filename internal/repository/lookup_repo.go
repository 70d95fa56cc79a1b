package repository

import (
	"errors"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"gorm.io/gorm"
)

// GetWebsiteTypes returns all website types in display order
func GetWebsiteTypes() ([]model.WebsiteType, error) {
	var types []model.WebsiteType

	err := db.Preload("DefaultCategory").Order("ordering_index, type").Find(&types).Error
	if err != nil {
		return nil, err
	}

	return types, nil
}

// GetWebsiteTypeByID returns one website type with its default category
func GetWebsiteTypeByID(id uint) (*model.WebsiteType, error) {
	var websiteType model.WebsiteType

	err := db.Preload("DefaultCategory").First(&websiteType, id).Error
	if err != nil {
		return nil, err
	}

	return &websiteType, nil
}

// GetWebsiteCategories returns all website categories
func GetWebsiteCategories() ([]model.WebsiteCategory, error) {
	var categories []model.WebsiteCategory

	err := db.Order("category desc").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// GetWebsiteRiskScores returns all risk scores
func GetWebsiteRiskScores() ([]model.WebsiteRiskScore, error) {
	var riskScores []model.WebsiteRiskScore

	err := db.Order("id desc").Find(&riskScores).Error
	if err != nil {
		return nil, err
	}

	return riskScores, nil
}

// GetReporterByName returns one reporter by its seeded name, nil when the
// lookup table does not carry it.
func GetReporterByName(name string) (*model.WebsiteReportedBy, error) {
	var reporter model.WebsiteReportedBy

	err := db.Where("reporter = ?", name).First(&reporter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &reporter, nil
}

// GetWebsiteReporters returns all reporters
func GetWebsiteReporters() ([]model.WebsiteReportedBy, error) {
	var reporters []model.WebsiteReportedBy

	err := db.Order("reporter desc").Find(&reporters).Error
	if err != nil {
		return nil, err
	}

	return reporters, nil
}
