package model

import (
	"time"

	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/urlutil"
)

// CounterfeiterRecord is the brand-counterfeiter review of a website
type CounterfeiterRecord struct {
	ID uint `json:"id" gorm:"primaryKey"`

	WebsiteID *uint    `json:"website_id"`
	Website   *Website `json:"website,omitempty" gorm:"constraint:OnDelete:RESTRICT"`

	URL string `json:"url" gorm:"size:2000"`

	// Domain

	DomainIsPlausible     bool `json:"domain_is_plausible" gorm:"default:false"`
	HasDiscount           bool `json:"has_discount" gorm:"default:false"`
	NoSSL                 bool `json:"no_ssl" gorm:"default:false"`
	HasCurrencySelection  bool `json:"has_currency_selection" gorm:"default:false"`
	DomainIsCounterfeiter bool `json:"domain_is_counterfeiter" gorm:"default:false"`

	// Products

	ProductsInStock      bool `json:"products_in_stock" gorm:"default:false"`
	NoProductDescription bool `json:"no_product_description" gorm:"default:false"`

	// Contact and imprint

	ContactURL                      *string `json:"contact_url" gorm:"size:2000"`
	HasContactMail                  bool    `json:"has_contact_mail" gorm:"default:false"`
	HasNoImprint                    bool    `json:"has_no_imprint" gorm:"default:false"`
	TermsAndConditionsOfContractURL *string `json:"terms_and_conditions_of_contract_url" gorm:"size:2000"`
	HasNoTermsAndConditions         bool    `json:"has_no_terms_and_conditions" gorm:"default:false"`
	Imprint                         *string `json:"imprint" gorm:"size:2000"`
	ImprintIsCounterfeiter          bool    `json:"imprint_is_counterfeiter" gorm:"default:false"`

	// Language

	SwitchingLanguage       bool `json:"switching_language" gorm:"default:false"`
	LanguageIsCounterfeiter bool `json:"language_is_counterfeiter" gorm:"default:false"`

	ProductExamples []ProductExample `json:"product_examples,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	LanguageURLs    []LanguageURL    `json:"language_urls,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	CreatedByID  *uint     `json:"created_by_id"`
	ModifiedByID *uint     `json:"modified_by_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName is the URL without its scheme
func (r *CounterfeiterRecord) DisplayName() string {
	return urlutil.RemoveProtocol(r.URL)
}

// ProductExample is an evidence URL for a suspicious product page
type ProductExample struct {
	ID                    uint    `json:"id" gorm:"primaryKey"`
	ProductExampleURL     *string `json:"product_example_url" gorm:"size:2000"`
	CounterfeiterRecordID uint    `json:"counterfeiter_record_id" gorm:"not null"`
}

// LanguageURL is an evidence URL for a language inconsistency
type LanguageURL struct {
	ID                    uint    `json:"id" gorm:"primaryKey"`
	LanguageURL           *string `json:"language_url" gorm:"size:2000"`
	CounterfeiterRecordID uint    `json:"counterfeiter_record_id" gorm:"not null"`
}
