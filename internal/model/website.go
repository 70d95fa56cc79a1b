package model

import (
	"time"

	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/urlutil"
)

// Website is a reported site awaiting or carrying an assessment. The URL is
// unique regardless of scheme, the repository enforces that on save.
type Website struct {
	ID uint `json:"id" gorm:"primaryKey"`

	URL string `json:"url" gorm:"size:2000"`

	RiskScoreID *uint             `json:"risk_score_id"`
	RiskScore   *WebsiteRiskScore `json:"risk_score,omitempty" gorm:"constraint:OnDelete:RESTRICT"`

	ReportedByID *uint              `json:"reported_by_id"`
	ReportedBy   *WebsiteReportedBy `json:"reported_by,omitempty" gorm:"constraint:OnDelete:RESTRICT"`

	AssignedToID *uint `json:"assigned_to_id"`
	AssignedTo   *User `json:"assigned_to,omitempty" gorm:"constraint:OnDelete:RESTRICT"`

	WebsiteTypeID *uint        `json:"website_type_id"`
	WebsiteType   *WebsiteType `json:"website_type,omitempty" gorm:"constraint:OnDelete:RESTRICT"`

	WebsiteCategoryID *uint            `json:"website_category_id"`
	WebsiteCategory   *WebsiteCategory `json:"website_category,omitempty" gorm:"constraint:OnDelete:RESTRICT"`

	Screenshot *string `json:"screenshot" gorm:"size:255"`

	CreatedByID  *uint     `json:"created_by_id"`
	ModifiedByID *uint     `json:"modified_by_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName is the URL without its scheme, used in toaster messages and
// document titles.
func (w *Website) DisplayName() string {
	return urlutil.RemoveProtocol(w.URL)
}
