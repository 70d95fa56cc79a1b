package service

import (
	"strings"

	"github.com/mal2-project/fake-shop-detection-database/internal/datatable"
	"github.com/mal2-project/fake-shop-detection-database/internal/forms"
	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"gorm.io/gorm"
)

// counterfeiterRules wires the conditional sections of the counterfeiter
// form.
var counterfeiterRules = []forms.Rule{
	{
		Field: "has_contact_mail", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{{Field: "contact_url", Required: true}},
	},
	{
		Field: "has_no_terms_and_conditions", Operator: forms.OpEQ, Value: false,
		Then: []forms.Requirement{{Field: "terms_and_conditions_of_contract_url", Required: true}},
	},
	{
		Field: "imprint_is_counterfeiter", Operator: forms.OpEQ, Value: true,
		Then: []forms.Requirement{{Field: "imprint", Required: true}},
	},
}

// counterfeiterEvidence lists the evidence row sets of the counterfeiter
// form in display order.
var counterfeiterEvidence = []EvidenceSet{
	{Name: "product_example_urls", After: "products_in_stock", Limits: forms.SetLimits{Min: 2}},
	{Name: "language_urls", After: "switching_language"},
}

// CounterfeiterSubmission is the payload of the add and edit counterfeiter
// dialogs.
type CounterfeiterSubmission struct {
	Record             model.CounterfeiterRecord `json:"record"`
	ProductExampleURLs []string                  `json:"product_example_urls"`
	LanguageURLs       []string                  `json:"language_urls"`
}

func (s *CounterfeiterSubmission) evidence(name string) []string {
	switch name {
	case "product_example_urls":
		return s.ProductExampleURLs
	case "language_urls":
		return s.LanguageURLs
	}
	return nil
}

// CounterfeitersTable lists all counterfeiter records
func CounterfeitersTable() *datatable.Spec {
	return &datatable.Spec{
		Table: "counterfeiters",
		PK:    "counterfeiter_records.id",
		RowID: "id",
		Fields: []datatable.Field{
			{Data: "id", Column: "counterfeiter_records.id", Hidden: true},
			{Data: "url", Column: "counterfeiter_records.url", Label: "URL", ResponsivePriority: 1},
			{Data: "domain_is_counterfeiter", Column: "counterfeiter_records.domain_is_counterfeiter",
				Label: "Counterfeiter", Boolean: true},
			{Data: "website__risk_score__risk_score", Column: "website_risk_scores.risk_score",
				Label: "Risk score", Regex: true},
			{Data: "website__assigned_to", Column: assignedToColumn.Column(),
				Label: "Assigned to", Regex: true},
			{Data: "created_at", Column: "counterfeiter_records.created_at", Label: "Created"},
		},
		Joins: []string{
			"LEFT JOIN websites ON websites.id = counterfeiter_records.website_id",
			"LEFT JOIN website_risk_scores ON website_risk_scores.id = websites.risk_score_id",
			"LEFT JOIN users AS assignees ON assignees.id = websites.assigned_to_id",
		},
		Actions: []datatable.Action{
			{Name: "details", Href: "/db/counterfeiter/%v/details/", IDPath: "id", Label: "Export details",
				Icon: `<i class="material-icons">description</i>`, Permissions: []string{"counterfeiter.view"}},
			{Name: "edit", Href: "/db/counterfeiter/%v/edit/", IDPath: "id", Label: "Edit counterfeiter",
				Icon: `<i class="material-icons">edit</i>`, Permissions: []string{"counterfeiter.change"}},
			{Name: "delete", Href: "/db/counterfeiter/%v/delete/", IDPath: "id", Label: "Delete counterfeiter",
				Icon: `<i class="material-icons">delete</i>`, Danger: true, Permissions: []string{"counterfeiter.delete"}},
		},
		Add: &datatable.Action{
			Href:        "/db/counterfeiters/add/",
			Label:       "Add counterfeiter",
			Permissions: []string{"counterfeiter.add"},
		},
		DefaultOrder: `[[6, "desc"]]`,
	}
}

// ValidateCounterfeiter runs the rules and evidence sets of the
// counterfeiter form.
func ValidateCounterfeiter(sub *CounterfeiterSubmission) *Validation {
	validation := &Validation{Errors: map[string][]forms.FieldError{}}

	if strings.TrimSpace(sub.Record.URL) == "" {
		validation.addError("url", forms.FieldError{
			Code: forms.CodeRequired, Message: "This field is required.",
		})
	}

	result := forms.Evaluate(counterfeiterRules, forms.ValuesOf(&sub.Record), hiddenTargets(counterfeiterRules))

	for field, fieldErrors := range result.Errors {
		validation.Errors[field] = append(validation.Errors[field], fieldErrors...)
	}
	validation.Requirements = result.Required

	forms.ClearFields(&sub.Record, result.Cleared)

	for _, set := range counterfeiterEvidence {
		_, setErrors := forms.CleanSet(sub.evidence(set.Name), set.Limits)
		for _, setError := range setErrors {
			validation.addError(set.Name, setError)
		}
	}

	return validation
}

// SaveCounterfeiter validates and stores a submission, creating or syncing
// the linked website the same way fake-shop saves do.
func SaveCounterfeiter(recordID *uint, sub *CounterfeiterSubmission, actor *model.User) (*model.CounterfeiterRecord, *Validation, error) {
	validation := ValidateCounterfeiter(sub)
	if !validation.OK() {
		return nil, validation, nil
	}

	record := &sub.Record

	if recordID != nil {
		existing, err := repository.GetCounterfeiterRecordByID(*recordID)
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

	websiteID, err := linkWebsite(record.WebsiteID, record.URL, model.WebsiteTypeCounterfeiter, actor)
	if err != nil {
		return nil, nil, err
	}
	record.WebsiteID = &websiteID
	record.Website = nil

	err = repository.WithTx(func(tx *gorm.DB) error {
		if recordID == nil {
			if err := repository.CreateCounterfeiterRecord(tx, record, actor.ID); err != nil {
				return err
			}
		} else {
			if err := repository.UpdateCounterfeiterRecord(tx, record, actor.ID); err != nil {
				return err
			}
		}

		return replaceCounterfeiterEvidence(tx, record.ID, sub)
	})
	if err != nil {
		return nil, nil, err
	}

	return record, validation, nil
}

// DeleteCounterfeiter removes a record with its evidence
func DeleteCounterfeiter(id uint) error {
	removed, err := repository.DeleteCounterfeiterRecord(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrRecordNotFound
	}

	return nil
}

func replaceCounterfeiterEvidence(tx *gorm.DB, recordID uint, sub *CounterfeiterSubmission) error {
	productExamples := make([]model.ProductExample, 0)
	for _, raw := range cleanRows(sub.ProductExampleURLs) {
		u := raw
		productExamples = append(productExamples, model.ProductExample{ProductExampleURL: &u, CounterfeiterRecordID: recordID})
	}

	languageURLs := make([]model.LanguageURL, 0)
	for _, raw := range cleanRows(sub.LanguageURLs) {
		u := raw
		languageURLs = append(languageURLs, model.LanguageURL{LanguageURL: &u, CounterfeiterRecordID: recordID})
	}

	if len(productExamples) == 0 {
		if err := tx.Where("counterfeiter_record_id = ?", recordID).Delete(&model.ProductExample{}).Error; err != nil {
			return err
		}
	} else if err := repository.ReplaceCounterfeiterEvidence(tx, recordID, &model.ProductExample{}, &productExamples); err != nil {
		return err
	}

	if len(languageURLs) == 0 {
		if err := tx.Where("counterfeiter_record_id = ?", recordID).Delete(&model.LanguageURL{}).Error; err != nil {
			return err
		}
	} else if err := repository.ReplaceCounterfeiterEvidence(tx, recordID, &model.LanguageURL{}, &languageURLs); err != nil {
		return err
	}

	return nil
}
