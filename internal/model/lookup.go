package model

// Seeded website type IDs. The check-website redirect and the scope queries
// depend on these fixed values.
const (
	WebsiteTypeFakeShop             uint = 1
	WebsiteTypeCounterfeiter        uint = 2
	WebsiteTypeNoVerificationNeeded uint = 3
	WebsiteTypeUnsure               uint = 4
	WebsiteTypeNoFake               uint = 5
)

// Seeded website category IDs.
const (
	WebsiteCategoryUnknown    uint = 1
	WebsiteCategoryOnlineShop uint = 2
	WebsiteCategoryOther      uint = 3
)

// Seeded reporter names
const (
	ReporterWatchlistInternet = "Watchlist Internet"
	ReporterWebsiteVisitor    = "Website visitor"
	ReporterCrawler           = "Crawler"
)

// WebsiteCategory classifies what kind of site a URL points at
type WebsiteCategory struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Category string `json:"category" gorm:"size:255;not null"`
}

// WebsiteRiskScore is an assessment level with a display name
type WebsiteRiskScore struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"size:255;not null"`
	RiskScore string `json:"risk_score" gorm:"size:50;not null"`
}

// WebsiteReportedBy names the source that reported a website
type WebsiteReportedBy struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Reporter string `json:"reporter" gorm:"size:255;not null"`
}

// TableName avoids the odd plural the default naming strategy derives
func (WebsiteReportedBy) TableName() string {
	return "website_reported_by"
}

// WebsiteType is the investigator's verdict for a website. Each type carries
// the category a website of that type is expected to have, disagreement
// between the two is surfaced as its own work queue.
type WebsiteType struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	OrderingIndex     uint             `json:"ordering_index" gorm:"default:0"`
	Type              string           `json:"type" gorm:"size:255;not null"`
	DefaultCategoryID *uint            `json:"default_category_id"`
	DefaultCategory   *WebsiteCategory `json:"default_category,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
}
