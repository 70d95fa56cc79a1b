package model

import (
	"time"

	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/urlutil"
)

// FakeShopRecord is the full fake-shop review of a website. At most one
// record exists per website, the URL is mirrored into the website on save.
type FakeShopRecord struct {
	ID uint `json:"id" gorm:"primaryKey"`

	WebsiteID *uint    `json:"website_id"`
	Website   *Website `json:"website,omitempty" gorm:"constraint:OnDelete:RESTRICT"`

	URL     string  `json:"url" gorm:"size:2000"`
	IsFake  bool    `json:"is_fake" gorm:"default:false"`
	Imprint *string `json:"imprint" gorm:"size:2000"`

	// Search

	SearchTerm           *string `json:"search_term" gorm:"size:2000"`
	SuspectedFraudSearch bool    `json:"suspected_fraud_search" gorm:"default:false"`

	// Price comparison

	ProductName                   *string `json:"product_name" gorm:"size:2000"`
	ProductURL                    *string `json:"product_url" gorm:"size:2000"`
	ProductReason                 *string `json:"product_reason" gorm:"size:2000"`
	PriceComparisonGeizhalsEuURL  *string `json:"price_comparison_geizhals_eu_url" gorm:"size:2000"`
	PriceComparisonReason         *string `json:"price_comparison_reason" gorm:"size:2000"`
	SuspectedFraudPriceComparison bool    `json:"suspected_fraud_price_comparison" gorm:"default:false"`

	// Payment method

	TermsOfPaymentURL            *string `json:"terms_of_payment_url" gorm:"size:2000"`
	CheckoutPageAddressURL       *string `json:"checkout_page_address_url" gorm:"size:2000"`
	CheckoutPagePaymentMethodURL *string `json:"checkout_page_payment_method_url" gorm:"size:2000"`
	PaymentMethodAssessment      *string `json:"payment_method_assessment" gorm:"size:2000"`
	SuspectedFraudPaymentMethod  bool    `json:"suspected_fraud_payment_method" gorm:"default:false"`

	// Database queries

	DatabaseSearchTerm         *string `json:"database_search_term" gorm:"size:2000"`
	IsWkoChecked               bool    `json:"is_wko_checked" gorm:"default:false"`
	IsHandelsregisterDeChecked bool    `json:"is_handelsregister_de_checked" gorm:"default:false"`
	IsJusticeEuropeChecked     bool    `json:"is_justice_europe_checked" gorm:"default:false"`
	DatabaseReviewResult       *string `json:"database_review_result" gorm:"size:2000"`
	SuspectedFraudCompanyData  bool    `json:"suspected_fraud_company_data" gorm:"default:false"`

	// VAT

	VAT               *string `json:"vat" gorm:"size:2000"`
	VATReviewResult   *string `json:"vat_review_result" gorm:"size:2000"`
	SuspectedFraudVAT bool    `json:"suspected_fraud_vat" gorm:"default:false"`

	// Domain

	DomainWhoisURL                     *string `json:"domain_whois_url" gorm:"size:2000"`
	DomainRegistrationCheck            bool    `json:"domain_registration_check" gorm:"default:false"`
	DomainRegistrationContradictionURL *string `json:"domain_registration_contradiction_url" gorm:"size:2000"`
	DomainRegistrar                    bool    `json:"domain_registrar" gorm:"default:false"`
	SuspectedFraudDomain               bool    `json:"suspected_fraud_domain" gorm:"default:false"`
	DomainIsFake                       bool    `json:"domain_is_fake" gorm:"default:false"`

	// Company name

	DifferentCompanyNames bool `json:"different_company_names" gorm:"default:false"`

	// Images

	CanNotCopyWebsiteImages bool `json:"can_not_copy_website_images" gorm:"default:false"`
	CopiedWebsiteImages     bool `json:"copied_website_images" gorm:"default:false"`
	SuspectedFraudImages    bool `json:"suspected_fraud_images" gorm:"default:false"`

	// Text

	CanNotCopyWebsiteText     bool    `json:"can_not_copy_website_text" gorm:"default:false"`
	CheckedWebsiteTextURL     *string `json:"checked_website_text_url" gorm:"size:2000"`
	WebsiteTextExample        *string `json:"website_text_example" gorm:"size:2000"`
	SuspectedFraudWebsiteText bool    `json:"suspected_fraud_website_text" gorm:"default:false"`

	// Language

	ChangingLanguagesAvailable bool `json:"changing_languages_available" gorm:"default:false"`

	// Terms and conditions of contract

	TermsAndConditionsOfContractURL *string `json:"terms_and_conditions_of_contract_url" gorm:"size:2000"`
	VeryShortTerms                  bool    `json:"very_short_terms" gorm:"default:false"`

	// Label/seal

	SuspectedFraudQualityMarkSeal bool    `json:"suspected_fraud_quality_mark_seal" gorm:"default:false"`
	QualityMarkURL                *string `json:"quality_mark_url" gorm:"size:2000"`
	IsGuetezeichenAtChecked       bool    `json:"is_guetezeichen_at_checked" gorm:"default:false"`
	IsEhiSealChecked              bool    `json:"is_ehi_seal_checked" gorm:"default:false"`
	IsTrustedShopsChecked         bool    `json:"is_trusted_shops_checked" gorm:"default:false"`
	IsFictitiousQualityMarks      bool    `json:"is_fictitious_quality_marks" gorm:"default:false"`
	FictitiousQualityMarkURL      *string `json:"fictitious_quality_mark_url" gorm:"size:2000"`

	FurtherReviewIsFake bool `json:"further_review_is_fake" gorm:"default:false"`

	SearchResults    []SearchResult    `json:"search_results,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CompanyNames     []CompanyName     `json:"company_names,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	WebsiteImages    []WebsiteImage    `json:"website_images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	WebsiteTexts     []WebsiteText     `json:"website_texts,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	LanguageExamples []LanguageExample `json:"language_examples,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	CreatedByID  *uint     `json:"created_by_id"`
	ModifiedByID *uint     `json:"modified_by_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName is the URL without its scheme
func (r *FakeShopRecord) DisplayName() string {
	return urlutil.RemoveProtocol(r.URL)
}

// SearchResult is an evidence URL found while searching for the shop
type SearchResult struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	ResultURL        *string `json:"result_url" gorm:"size:2000"`
	FakeShopRecordID uint    `json:"fake_shop_record_id" gorm:"not null"`
}

// CompanyName is an evidence URL showing a conflicting company name
type CompanyName struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	CompanyNameURL   *string `json:"company_name_url" gorm:"size:2000"`
	FakeShopRecordID uint    `json:"fake_shop_record_id" gorm:"not null"`
}

// WebsiteImage is an evidence URL for a copied product image
type WebsiteImage struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	ImageURL         *string `json:"image_url" gorm:"size:2000"`
	FakeShopRecordID uint    `json:"fake_shop_record_id" gorm:"not null"`
}

// WebsiteText is an evidence URL for a copied website text
type WebsiteText struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	WebsiteTextURL   *string `json:"website_text_url" gorm:"size:2000"`
	FakeShopRecordID uint    `json:"fake_shop_record_id" gorm:"not null"`
}

// LanguageExample is an evidence URL for a language inconsistency
type LanguageExample struct {
	ID                 uint    `json:"id" gorm:"primaryKey"`
	LanguageExampleURL *string `json:"language_example_url" gorm:"size:2000"`
	FakeShopRecordID   uint    `json:"fake_shop_record_id" gorm:"not null"`
}
