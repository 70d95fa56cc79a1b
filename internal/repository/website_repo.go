package repository

import (
	"errors"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/urlutil"
	"gorm.io/gorm"
)

// Websites returns the base website query
func Websites() *gorm.DB {
	return db.Model(&model.Website{})
}

func fakeShopURLs() *gorm.DB {
	return db.Model(&model.FakeShopRecord{}).Select("url").Where("url IS NOT NULL")
}

func counterfeiterURLs() *gorm.DB {
	return db.Model(&model.CounterfeiterRecord{}).Select("url").Where("url IS NOT NULL")
}

func withoutRecords(q *gorm.DB) *gorm.DB {
	return q.
		Where("websites.url NOT IN (?)", fakeShopURLs()).
		Where("websites.url NOT IN (?)", counterfeiterURLs())
}

// WebsitesToCheck returns websites that still need a review: nothing recorded
// yet and either untyped or typed as fake shop / counterfeiter.
func WebsitesToCheck() *gorm.DB {
	return withoutRecords(Websites()).
		Where("websites.website_type_id IS NULL OR websites.website_type_id IN ?",
			[]uint{model.WebsiteTypeFakeShop, model.WebsiteTypeCounterfeiter})
}

// WebsitesWithoutVerification returns unrecorded websites marked as needing
// no verification.
func WebsitesWithoutVerification() *gorm.DB {
	return withoutRecords(Websites()).
		Where("websites.website_type_id = ?", model.WebsiteTypeNoVerificationNeeded)
}

// WebsitesUnsure returns unrecorded websites marked unsure
func WebsitesUnsure() *gorm.DB {
	return withoutRecords(Websites()).
		Where("websites.website_type_id = ?", model.WebsiteTypeUnsure)
}

// WebsitesNoFake returns unrecorded websites marked as no fake
func WebsitesNoFake() *gorm.DB {
	return withoutRecords(Websites()).
		Where("websites.website_type_id = ?", model.WebsiteTypeNoFake)
}

// WebsitesDisagreement returns unrecorded websites whose category does not
// match the default category of their type.
func WebsitesDisagreement() *gorm.DB {
	return withoutRecords(Websites()).
		Joins("JOIN website_types ON website_types.id = websites.website_type_id").
		Where("websites.website_category_id <> website_types.default_category_id" +
			" OR (websites.website_category_id IS NULL AND website_types.default_category_id IS NOT NULL)" +
			" OR (websites.website_category_id IS NOT NULL AND website_types.default_category_id IS NULL)")
}

// WebsitesOther returns unrecorded websites categorized as other
func WebsitesOther() *gorm.DB {
	return withoutRecords(Websites()).
		Where("websites.website_category_id = ?", model.WebsiteCategoryOther)
}

// WebsitesOnlineShops returns unrecorded websites categorized as online shops
func WebsitesOnlineShops() *gorm.DB {
	return withoutRecords(Websites()).
		Where("websites.website_category_id = ?", model.WebsiteCategoryOnlineShop)
}

// WebsitesFakeShops returns websites with a fake-shop record
func WebsitesFakeShops() *gorm.DB {
	return Websites().Where("websites.url IN (?)", fakeShopURLs())
}

// WebsitesCounterfeiters returns websites with a counterfeiter record
func WebsitesCounterfeiters() *gorm.DB {
	return Websites().Where("websites.url IN (?)", counterfeiterURLs())
}

// GetWebsiteByID returns a website with its relations, nil when not found
func GetWebsiteByID(id uint) (*model.Website, error) {
	var website model.Website

	err := db.
		Preload("RiskScore").
		Preload("ReportedBy").
		Preload("AssignedTo").
		Preload("WebsiteType").
		Preload("WebsiteCategory").
		First(&website, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &website, nil
}

// FindWebsiteByURLIgnoringScheme returns the website whose URL matches the
// given one regardless of the http/https scheme, nil when none exists.
func FindWebsiteByURLIgnoringScheme(rawURL string) (*model.Website, error) {
	httpURL, httpsURL := urlutil.SchemeVariants(rawURL)

	var website model.Website

	err := db.
		Where("url = ? OR url = ?", httpURL, httpsURL).
		First(&website).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &website, nil
}

// CreateReportedWebsite creates a website from the public report form,
// without an acting user to stamp.
func CreateReportedWebsite(website *model.Website) error {
	return db.Create(website).Error
}

// CreateWebsite creates a website stamped with the acting user
func CreateWebsite(website *model.Website, actorID uint) error {
	website.CreatedByID = &actorID
	website.ModifiedByID = &actorID

	return db.Create(website).Error
}

// UpdateWebsite persists changes to a website stamped with the acting user
func UpdateWebsite(website *model.Website, actorID uint) error {
	website.ModifiedByID = &actorID

	return db.Save(website).Error
}

// DeleteWebsite deletes a website and reports whether a row was removed
func DeleteWebsite(id uint) (bool, error) {
	result := db.Delete(&model.Website{}, id)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
