package service

import (
	"errors"
	"strings"

	"github.com/mal2-project/fake-shop-detection-database/internal/datatable"
	"github.com/mal2-project/fake-shop-detection-database/internal/forms"
	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("record not found")

// fakeShopRules wires the conditional sections of the fake-shop form: when
// an investigator flags a fraud indicator, the detail fields of that
// section become required, and while a flag is off its hidden detail
// fields are cleared.
var fakeShopRules = []forms.Rule{
	{
		Field: "suspected_fraud_search", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{{Field: "search_term", Required: true}},
	},
	{
		Field: "suspected_fraud_price_comparison", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{
			{Field: "product_name", Required: true},
			{Field: "product_url", Required: true},
			{Field: "price_comparison_reason", Required: true},
		},
	},
	{
		Field: "suspected_fraud_payment_method", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{{Field: "payment_method_assessment", Required: true}},
	},
	{
		Field: "suspected_fraud_company_data", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{
			{Field: "database_search_term", Required: true},
			{Field: "database_review_result", Required: true},
		},
	},
	{
		Field: "suspected_fraud_vat", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{{Field: "vat_review_result", Required: true}},
	},
	{
		Field: "domain_registration_check", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{{Field: "domain_whois_url", Required: true}},
	},
	{
		Field: "suspected_fraud_domain", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{{Field: "domain_registration_contradiction_url", Required: true}},
	},
	{
		Field: "suspected_fraud_website_text", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{
			{Field: "checked_website_text_url", Required: true},
			{Field: "website_text_example", Required: true},
		},
	},
	{
		Field: "is_fictitious_quality_marks", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{{Field: "fictitious_quality_mark_url", Required: true}},
	},
	{
		Field: "suspected_fraud_quality_mark_seal", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{{Field: "quality_mark_url", Required: true}},
	},
}

// fakeShopEvidence lists the evidence row sets of the fake-shop form in
// display order.
var fakeShopEvidence = []EvidenceSet{
	{Name: "search_result_urls", After: "search_term", Limits: forms.SetLimits{Min: 2}},
	{Name: "company_name_urls", After: "different_company_names"},
	{Name: "website_image_urls", After: "copied_website_images"},
	{Name: "website_text_urls", After: "website_text_example"},
	{Name: "language_example_urls", After: "changing_languages_available"},
}

// hiddenTargets derives which fields the frontend hides while their rule is
// inactive: every rule target is shown on demand only.
func hiddenTargets(rules []forms.Rule) map[string]bool {
	hidden := map[string]bool{}
	for _, rule := range rules {
		for _, req := range rule.Then {
			hidden[req.Field] = true
		}
	}
	return hidden
}

// FakeShopSubmission is the payload of the add and edit fake-shop dialogs
type FakeShopSubmission struct {
	Record              model.FakeShopRecord `json:"record"`
	SearchResultURLs    []string             `json:"search_result_urls"`
	CompanyNameURLs     []string             `json:"company_name_urls"`
	WebsiteImageURLs    []string             `json:"website_image_urls"`
	WebsiteTextURLs     []string             `json:"website_text_urls"`
	LanguageExampleURLs []string             `json:"language_example_urls"`
}

func (s *FakeShopSubmission) evidence(name string) []string {
	switch name {
	case "search_result_urls":
		return s.SearchResultURLs
	case "company_name_urls":
		return s.CompanyNameURLs
	case "website_image_urls":
		return s.WebsiteImageURLs
	case "website_text_urls":
		return s.WebsiteTextURLs
	case "language_example_urls":
		return s.LanguageExampleURLs
	}
	return nil
}

// FakeShopsTable lists all fake-shop records with their website assessment
func FakeShopsTable() *datatable.Spec {
	return &datatable.Spec{
		Table: "fake-shops",
		PK:    "fake_shop_records.id",
		RowID: "id",
		Fields: []datatable.Field{
			{Data: "id", Column: "fake_shop_records.id", Hidden: true},
			{Data: "url", Column: "fake_shop_records.url", Label: "URL", ResponsivePriority: 1},
			{Data: "is_fake", Column: "fake_shop_records.is_fake", Label: "Fake", Boolean: true},
			{Data: "website__risk_score__risk_score", Column: "website_risk_scores.risk_score",
				Label: "Risk score", Regex: true},
			{Data: "website__assigned_to", Column: assignedToColumn.Column(),
				Label: "Assigned to", Regex: true},
			{Data: "created_at", Column: "fake_shop_records.created_at", Label: "Created"},
		},
		Joins: []string{
			"LEFT JOIN websites ON websites.id = fake_shop_records.website_id",
			"LEFT JOIN website_risk_scores ON website_risk_scores.id = websites.risk_score_id",
			"LEFT JOIN users AS assignees ON assignees.id = websites.assigned_to_id",
		},
		Actions: []datatable.Action{
			{Name: "details", Href: "/db/fake-shop/%v/details/", IDPath: "id", Label: "Export details",
				Icon: `<i class="material-icons">description</i>`, Permissions: []string{"fakeshop.view"}},
			{Name: "edit", Href: "/db/fake-shop/%v/edit/", IDPath: "id", Label: "Edit fake shop",
				Icon: `<i class="material-icons">edit</i>`, Permissions: []string{"fakeshop.change"}},
			{Name: "delete", Href: "/db/fake-shop/%v/delete/", IDPath: "id", Label: "Delete fake shop",
				Icon: `<i class="material-icons">delete</i>`, Danger: true, Permissions: []string{"fakeshop.delete"}},
		},
		Add: &datatable.Action{
			Href:        "/db/fake-shops/add/",
			Label:       "Add fake shop",
			Permissions: []string{"fakeshop.add"},
		},
		DefaultOrder: `[[6, "desc"]]`,
	}
}

// ValidateFakeShop runs the rules and evidence sets of the fake-shop form
// and force-clears the hidden fields of inactive rules on the record.
func ValidateFakeShop(sub *FakeShopSubmission) *Validation {
	validation := &Validation{Errors: map[string][]forms.FieldError{}}

	if strings.TrimSpace(sub.Record.URL) == "" {
		validation.addError("url", forms.FieldError{
			Code: forms.CodeRequired, Message: "This field is required.",
		})
	}

	result := forms.Evaluate(fakeShopRules, forms.ValuesOf(&sub.Record), hiddenTargets(fakeShopRules))

	for field, fieldErrors := range result.Errors {
		validation.Errors[field] = append(validation.Errors[field], fieldErrors...)
	}
	validation.Requirements = result.Required

	forms.ClearFields(&sub.Record, result.Cleared)

	for _, set := range fakeShopEvidence {
		_, setErrors := forms.CleanSet(sub.evidence(set.Name), set.Limits)
		for _, setError := range setErrors {
			validation.addError(set.Name, setError)
		}
	}

	return validation
}

// SaveFakeShop validates and stores a submission. A nil recordID creates,
// otherwise the existing record is replaced. The linked website is created
// on first save and kept in sync with the record's URL.
func SaveFakeShop(recordID *uint, sub *FakeShopSubmission, actor *model.User) (*model.FakeShopRecord, *Validation, error) {
	validation := ValidateFakeShop(sub)
	if !validation.OK() {
		return nil, validation, nil
	}

	record := &sub.Record

	if recordID != nil {
		existing, err := repository.GetFakeShopRecordByID(*recordID)
		if err != nil {
			return nil, nil, err
		}
		if existing == nil {
			return nil, nil, ErrRecordNotFound
		}

		record.ID = existing.ID
		record.CreatedByID = existing.CreatedByID
		record.CreatedAt = existing.CreatedAt
		if record.WebsiteID == nil {
			record.WebsiteID = existing.WebsiteID
		}
	}

	websiteID, err := linkWebsite(record.WebsiteID, record.URL, model.WebsiteTypeFakeShop, actor)
	if err != nil {
		return nil, nil, err
	}
	record.WebsiteID = &websiteID
	record.Website = nil

	err = repository.WithTx(func(tx *gorm.DB) error {
		if recordID == nil {
			if err := repository.CreateFakeShopRecord(tx, record, actor.ID); err != nil {
				return err
			}
		} else {
			if err := repository.UpdateFakeShopRecord(tx, record, actor.ID); err != nil {
				return err
			}
		}

		return replaceFakeShopEvidence(tx, record.ID, sub)
	})
	if err != nil {
		return nil, nil, err
	}

	return record, validation, nil
}

// DeleteFakeShop removes a record with its evidence
func DeleteFakeShop(id uint) error {
	removed, err := repository.DeleteFakeShopRecord(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrRecordNotFound
	}

	return nil
}

func replaceFakeShopEvidence(tx *gorm.DB, recordID uint, sub *FakeShopSubmission) error {
	type childSet struct {
		child any
		rows  any
		count int
	}

	searchResults := make([]model.SearchResult, 0)
	for _, raw := range cleanRows(sub.SearchResultURLs) {
		u := raw
		searchResults = append(searchResults, model.SearchResult{ResultURL: &u, FakeShopRecordID: recordID})
	}

	companyNames := make([]model.CompanyName, 0)
	for _, raw := range cleanRows(sub.CompanyNameURLs) {
		u := raw
		companyNames = append(companyNames, model.CompanyName{CompanyNameURL: &u, FakeShopRecordID: recordID})
	}

	websiteImages := make([]model.WebsiteImage, 0)
	for _, raw := range cleanRows(sub.WebsiteImageURLs) {
		u := raw
		websiteImages = append(websiteImages, model.WebsiteImage{ImageURL: &u, FakeShopRecordID: recordID})
	}

	websiteTexts := make([]model.WebsiteText, 0)
	for _, raw := range cleanRows(sub.WebsiteTextURLs) {
		u := raw
		websiteTexts = append(websiteTexts, model.WebsiteText{WebsiteTextURL: &u, FakeShopRecordID: recordID})
	}

	languageExamples := make([]model.LanguageExample, 0)
	for _, raw := range cleanRows(sub.LanguageExampleURLs) {
		u := raw
		languageExamples = append(languageExamples, model.LanguageExample{LanguageExampleURL: &u, FakeShopRecordID: recordID})
	}

	sets := []childSet{
		{&model.SearchResult{}, &searchResults, len(searchResults)},
		{&model.CompanyName{}, &companyNames, len(companyNames)},
		{&model.WebsiteImage{}, &websiteImages, len(websiteImages)},
		{&model.WebsiteText{}, &websiteTexts, len(websiteTexts)},
		{&model.LanguageExample{}, &languageExamples, len(languageExamples)},
	}

	for _, set := range sets {
		if set.count == 0 {
			// still drop existing rows, an empty set means all were deleted
			if err := tx.Where("fake_shop_record_id = ?", recordID).Delete(set.child).Error; err != nil {
				return err
			}
			continue
		}

		if err := repository.ReplaceFakeShopEvidence(tx, recordID, set.child, set.rows); err != nil {
			return err
		}
	}

	return nil
}

// cleanRows drops empty rows and duplicates, mirroring what validation kept
func cleanRows(rows []string) []string {
	kept, _ := forms.CleanSet(rows, forms.SetLimits{})
	return kept
}

// linkWebsite resolves the website a record belongs to: reuse the linked or
// URL-matching website and sync its URL, or create a fresh one typed after
// the record.
func linkWebsite(websiteID *uint, rawURL string, typeID uint, actor *model.User) (uint, error) {
	rawURL = strings.TrimSpace(rawURL)

	var website *model.Website
	var err error

	if websiteID != nil {
		website, err = repository.GetWebsiteByID(*websiteID)
		if err != nil {
			return 0, err
		}
	}

	if website == nil {
		website, err = repository.FindWebsiteByURLIgnoringScheme(rawURL)
		if err != nil {
			return 0, err
		}
	}

	if website == nil {
		website = &model.Website{
			URL:           rawURL,
			WebsiteTypeID: &typeID,
			AssignedToID:  &actor.ID,
		}

		if err := applyDefaultCategory(website); err != nil {
			return 0, err
		}
		if err := repository.CreateWebsite(website, actor.ID); err != nil {
			return 0, err
		}

		TakeScreenshot(website, actor.ID)

		return website.ID, nil
	}

	changed := false

	if website.URL != rawURL {
		website.URL = rawURL
		changed = true
	}
	if website.WebsiteTypeID == nil {
		website.WebsiteTypeID = &typeID
		if err := applyDefaultCategory(website); err != nil {
			return 0, err
		}
		changed = true
	}

	if changed {
		website.RiskScore = nil
		website.ReportedBy = nil
		website.AssignedTo = nil
		website.WebsiteType = nil
		website.WebsiteCategory = nil

		if err := repository.UpdateWebsite(website, actor.ID); err != nil {
			return 0, err
		}
	}

	return website.ID, nil
}
