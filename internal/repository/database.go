package repository

import (
	"fmt"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the database connection, migrates the schema and seeds the
// lookup tables and the admin user.
func InitDB(cfg *config.Config) error {
	var dialector gorm.Dialector

	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	var err error
	db, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := seedLookups(db); err != nil {
		return fmt.Errorf("failed to seed lookup tables: %w", err)
	}

	if err := seedAdminUser(db, cfg); err != nil {
		zap.L().Error("Failed to initialize admin user", zap.Error(err))
		// Boot continues, the admin can be created manually
	}

	zap.L().Info("Database initialized successfully",
		zap.String("driver", cfg.Database.Driver))

	return nil
}

// InitTestDB opens an in-memory sqlite database for tests
func InitTestDB() error {
	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		return err
	}

	return seedLookups(db)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.WebsiteCategory{},
		&model.WebsiteRiskScore{},
		&model.WebsiteReportedBy{},
		&model.WebsiteType{},
		&model.Website{},
		&model.FakeShopRecord{},
		&model.SearchResult{},
		&model.CompanyName{},
		&model.WebsiteImage{},
		&model.WebsiteText{},
		&model.LanguageExample{},
		&model.CounterfeiterRecord{},
		&model.ProductExample{},
		&model.LanguageURL{},
	)
}

func seedLookups(db *gorm.DB) error {
	categories := []model.WebsiteCategory{
		{ID: model.WebsiteCategoryUnknown, Category: "Unknown"},
		{ID: model.WebsiteCategoryOnlineShop, Category: "Online shop"},
		{ID: model.WebsiteCategoryOther, Category: "Other"},
	}

	for _, category := range categories {
		if err := db.FirstOrCreate(&model.WebsiteCategory{}, category).Error; err != nil {
			return err
		}
	}

	unknown := model.WebsiteCategoryUnknown
	onlineShop := model.WebsiteCategoryOnlineShop
	other := model.WebsiteCategoryOther

	types := []model.WebsiteType{
		{ID: model.WebsiteTypeFakeShop, OrderingIndex: 1, Type: "Fake shop", DefaultCategoryID: &onlineShop},
		{ID: model.WebsiteTypeCounterfeiter, OrderingIndex: 2, Type: "Brand counterfeiter", DefaultCategoryID: &onlineShop},
		{ID: model.WebsiteTypeNoVerificationNeeded, OrderingIndex: 3, Type: "No verification necessary", DefaultCategoryID: &other},
		{ID: model.WebsiteTypeUnsure, OrderingIndex: 4, Type: "Unsure", DefaultCategoryID: &unknown},
		{ID: model.WebsiteTypeNoFake, OrderingIndex: 5, Type: "No fake", DefaultCategoryID: &onlineShop},
	}

	for _, websiteType := range types {
		if err := db.FirstOrCreate(&model.WebsiteType{}, websiteType).Error; err != nil {
			return err
		}
	}

	riskScores := []model.WebsiteRiskScore{
		{ID: 1, Name: "Very low risk", RiskScore: "1"},
		{ID: 2, Name: "Low risk", RiskScore: "2"},
		{ID: 3, Name: "Below average risk", RiskScore: "3"},
		{ID: 4, Name: "Above average risk", RiskScore: "4"},
		{ID: 5, Name: "High risk", RiskScore: "5"},
		{ID: 6, Name: "Very high risk", RiskScore: "6"},
	}

	for _, riskScore := range riskScores {
		if err := db.FirstOrCreate(&model.WebsiteRiskScore{}, riskScore).Error; err != nil {
			return err
		}
	}

	reporters := []model.WebsiteReportedBy{
		{ID: 1, Reporter: "Watchlist Internet"},
		{ID: 2, Reporter: "Website visitor"},
		{ID: 3, Reporter: "Crawler"},
	}

	for _, reporter := range reporters {
		if err := db.FirstOrCreate(&model.WebsiteReportedBy{}, reporter).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedAdminUser(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Username == "" {
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", cfg.Admin.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Username: cfg.Admin.Username,
		Password: string(hash),
		Email:    cfg.Admin.Email,
		Role:     model.RoleAdmin,
		IsActive: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	zap.L().Info("Admin user created successfully",
		zap.String("username", cfg.Admin.Username))

	return nil
}

// DB returns the shared database handle
func DB() *gorm.DB {
	return db
}

// Close closes the database connection
func Close() error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// WithTx executes a function within a transaction
func WithTx(fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}
