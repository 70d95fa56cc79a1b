package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mal2-project/fake-shop-detection-database/internal/datatable"
	"github.com/mal2-project/fake-shop-detection-database/internal/forms"
	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrWebsiteNotFound = errors.New("website not found")
	ErrNotCheckable    = errors.New("website cannot be checked")
)

// WebsiteForm carries the add and edit website dialogs
type WebsiteForm struct {
	URL               string `json:"url" binding:"required"`
	RiskScoreID       *uint  `json:"risk_score_id"`
	ReportedByID      *uint  `json:"reported_by_id"`
	AssignedToID      *uint  `json:"assigned_to_id"`
	WebsiteTypeID     *uint  `json:"website_type_id"`
	WebsiteCategoryID *uint  `json:"website_category_id"`
}

// WebsiteScope is one work queue over the website pool: a filtered base
// query plus the table layout it is shown with.
type WebsiteScope struct {
	Name  string
	Query func() *gorm.DB
	Spec  func() *datatable.Spec
}

var websiteScopes = []WebsiteScope{
	{Name: "all", Query: repository.Websites, Spec: websitesSpec("websites", true)},
	{Name: "check", Query: repository.WebsitesToCheck, Spec: websitesSpec("websites-check", true)},
	{Name: "disagreement", Query: repository.WebsitesDisagreement, Spec: websitesSpec("websites-disagreement", false)},
	{Name: "without-verification", Query: repository.WebsitesWithoutVerification, Spec: websitesSpec("websites-without-verification", false)},
	{Name: "unsure", Query: repository.WebsitesUnsure, Spec: websitesSpec("websites-unsure", false)},
	{Name: "no-fake", Query: repository.WebsitesNoFake, Spec: websitesSpec("websites-no-fake", false)},
	{Name: "other", Query: repository.WebsitesOther, Spec: websitesSpec("websites-other", false)},
	{Name: "online-shop", Query: repository.WebsitesOnlineShops, Spec: websitesSpec("websites-online-shop", false)},
}

// WebsiteScopeByName resolves a work queue by its URL segment
func WebsiteScopeByName(name string) *WebsiteScope {
	for i := range websiteScopes {
		if websiteScopes[i].Name == name {
			return &websiteScopes[i]
		}
	}
	return nil
}

var websiteJoins = []string{
	"LEFT JOIN website_risk_scores ON website_risk_scores.id = websites.risk_score_id",
	"LEFT JOIN website_reported_by ON website_reported_by.id = websites.reported_by_id",
	"LEFT JOIN users AS assignees ON assignees.id = websites.assigned_to_id",
	"LEFT JOIN website_types AS wt ON wt.id = websites.website_type_id",
	"LEFT JOIN website_categories ON website_categories.id = websites.website_category_id",
}

var assignedToColumn = datatable.Annotation{
	LinkedJoin: "assignees.id",
	Components: []string{"assignees.first_name", "' '", "assignees.last_name"},
}

func websitesSpec(table string, withCheck bool) func() *datatable.Spec {
	return func() *datatable.Spec {
		spec := &datatable.Spec{
			Table: table,
			PK:    "websites.id",
			RowID: "id",
			Fields: []datatable.Field{
				{Data: "id", Column: "websites.id", Hidden: true},
				{Data: "url", Column: "websites.url", Label: "URL", ResponsivePriority: 1},
				{Data: "risk_score__risk_score", Column: "website_risk_scores.risk_score",
					Label: "Risk score", Regex: true},
				{Data: "reported_by__reporter", Column: "website_reported_by.reporter",
					Label: "Reported by", Regex: true},
				{Data: "assigned_to", Column: assignedToColumn.Column(),
					Label: "Assigned to", Regex: true},
				{Data: "website_type__type", Column: "wt.type", Label: "Type", Regex: true},
				{Data: "website_category__category", Column: "website_categories.category",
					Label: "Category", Regex: true},
			},
			Joins: websiteJoins,
			Actions: []datatable.Action{
				{Name: "edit", Href: "/db/website/%v/edit/", IDPath: "id", Label: "Edit website",
					Icon: `<i class="material-icons">edit</i>`, Permissions: []string{"website.change"}},
				{Name: "delete", Href: "/db/website/%v/delete/", IDPath: "id", Label: "Delete website",
					Icon: `<i class="material-icons">delete</i>`, Danger: true, Permissions: []string{"website.delete"}},
			},
			Add: &datatable.Action{
				Href:        "/db/websites/add/",
				Label:       "Add website",
				Permissions: []string{"website.add"},
			},
			DefaultOrder: `[[3, "desc"]]`,
		}

		if withCheck {
			check := datatable.Action{
				Name: "check", Href: "/db/website/%v/check/", IDPath: "id", Label: "Check website",
				Icon: `<i class="material-icons">search</i>`, Permissions: []string{"website.check"},
			}
			spec.Actions = append([]datatable.Action{check}, spec.Actions...)
		}

		return spec
	}
}

// CreateWebsite validates and stores a new website. Duplicate URLs are
// rejected regardless of scheme, a missing category falls back to the
// default category of the chosen type.
func CreateWebsite(form *WebsiteForm, actor *model.User) (*model.Website, map[string][]forms.FieldError, error) {
	if fieldErrors := validateWebsiteURL(form.URL, 0); fieldErrors != nil {
		return nil, fieldErrors, nil
	}

	website := &model.Website{
		URL:               strings.TrimSpace(form.URL),
		RiskScoreID:       form.RiskScoreID,
		ReportedByID:      form.ReportedByID,
		AssignedToID:      form.AssignedToID,
		WebsiteTypeID:     form.WebsiteTypeID,
		WebsiteCategoryID: form.WebsiteCategoryID,
	}

	if err := applyDefaultCategory(website); err != nil {
		return nil, nil, err
	}

	if err := repository.CreateWebsite(website, actor.ID); err != nil {
		return nil, nil, err
	}

	TakeScreenshot(website, actor.ID)

	return website, nil, nil
}

// UpdateWebsite validates and applies the edit website dialog
func UpdateWebsite(id uint, form *WebsiteForm, actor *model.User) (*model.Website, map[string][]forms.FieldError, error) {
	website, err := repository.GetWebsiteByID(id)
	if err != nil {
		return nil, nil, err
	}
	if website == nil {
		return nil, nil, ErrWebsiteNotFound
	}

	if fieldErrors := validateWebsiteURL(form.URL, website.ID); fieldErrors != nil {
		return nil, fieldErrors, nil
	}

	urlChanged := strings.TrimSpace(form.URL) != website.URL

	website.URL = strings.TrimSpace(form.URL)
	website.RiskScoreID = form.RiskScoreID
	website.ReportedByID = form.ReportedByID
	website.AssignedToID = form.AssignedToID
	website.WebsiteTypeID = form.WebsiteTypeID
	website.WebsiteCategoryID = form.WebsiteCategoryID

	// drop stale preloads so Save never resurrects removed relations
	website.RiskScore = nil
	website.ReportedBy = nil
	website.AssignedTo = nil
	website.WebsiteType = nil
	website.WebsiteCategory = nil

	if err := applyDefaultCategory(website); err != nil {
		return nil, nil, err
	}

	if err := repository.UpdateWebsite(website, actor.ID); err != nil {
		return nil, nil, err
	}

	if urlChanged || website.Screenshot == nil {
		TakeScreenshot(website, actor.ID)
	}

	return website, nil, nil
}

// DeleteWebsite removes a website together with its screenshot file
func DeleteWebsite(id uint) error {
	website, err := repository.GetWebsiteByID(id)
	if err != nil {
		return err
	}
	if website == nil {
		return ErrWebsiteNotFound
	}

	removed, err := repository.DeleteWebsite(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrWebsiteNotFound
	}

	RemoveScreenshot(website)

	return nil
}

// CheckRedirect resolves where the check action of a website leads: the add
// dialog of the matching record type, or the edit dialog when a record
// already exists. Websites without an assignee or a checkable type are not
// checkable.
func CheckRedirect(id uint) (string, error) {
	website, err := repository.GetWebsiteByID(id)
	if err != nil {
		return "", err
	}
	if website == nil {
		return "", ErrWebsiteNotFound
	}

	if website.AssignedToID == nil || website.WebsiteTypeID == nil {
		return "", ErrNotCheckable
	}

	switch *website.WebsiteTypeID {
	case model.WebsiteTypeFakeShop:
		record, err := repository.GetFakeShopRecordByWebsiteID(website.ID)
		if err != nil {
			return "", err
		}
		if record != nil {
			return fmt.Sprintf("/db/fake-shop/%d/edit/", record.ID), nil
		}
		return fmt.Sprintf("/db/fake-shops/add/?website=%d", website.ID), nil

	case model.WebsiteTypeCounterfeiter:
		record, err := repository.GetCounterfeiterRecordByWebsiteID(website.ID)
		if err != nil {
			return "", err
		}
		if record != nil {
			return fmt.Sprintf("/db/counterfeiter/%d/edit/", record.ID), nil
		}
		return fmt.Sprintf("/db/counterfeiters/add/?website=%d", website.ID), nil
	}

	return "", ErrNotCheckable
}

func validateWebsiteURL(rawURL string, selfID uint) map[string][]forms.FieldError {
	rawURL = strings.TrimSpace(rawURL)

	if rawURL == "" {
		return map[string][]forms.FieldError{
			"url": {{Code: forms.CodeRequired, Message: "This field is required."}},
		}
	}

	existing, err := repository.FindWebsiteByURLIgnoringScheme(rawURL)
	if err == nil && existing != nil && existing.ID != selfID {
		return map[string][]forms.FieldError{
			"url": {{Code: "unique", Message: "A website with this URL already exists."}},
		}
	}

	return nil
}

// applyDefaultCategory fills a missing category from the type's default
func applyDefaultCategory(website *model.Website) error {
	if website.WebsiteCategoryID != nil || website.WebsiteTypeID == nil {
		return nil
	}

	websiteType, err := repository.GetWebsiteTypeByID(*website.WebsiteTypeID)
	if err != nil {
		return err
	}

	website.WebsiteCategoryID = websiteType.DefaultCategoryID

	return nil
}
