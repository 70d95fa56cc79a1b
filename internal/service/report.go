package service

import (
	"errors"
	"strings"
	"time"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/logger"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/redis"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrReportRateLimited = errors.New("too many reports from this address")
	ErrReportInvalidURL  = errors.New("a url is required")
)

const (
	reportWindowSeconds = 3600
	reportMaxPerWindow  = 10
)

// fallback limiter for deployments without redis
var reportFallbackLimit = NewRateLimiter(time.Duration(reportWindowSeconds)*time.Second, reportMaxPerWindow)

// WebsiteReport is an anonymous suspicion report from the public form
type WebsiteReport struct {
	URL string `json:"url" binding:"required"`
}

// SubmitReport takes a public report of a suspicious site. Already known
// URLs are accepted silently so reporters cannot probe the database, new
// ones enter the pool as visitor reports awaiting review.
func SubmitReport(report *WebsiteReport, clientIP string) error {
	if !allowReport(clientIP) {
		return ErrReportRateLimited
	}

	rawURL := strings.TrimSpace(report.URL)
	if rawURL == "" {
		return ErrReportInvalidURL
	}

	existing, err := repository.FindWebsiteByURLIgnoringScheme(rawURL)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	reporter, err := repository.GetReporterByName(model.ReporterWebsiteVisitor)
	if err != nil {
		return err
	}

	website := &model.Website{URL: rawURL}
	if reporter != nil {
		website.ReportedByID = &reporter.ID
	}

	if err := repository.CreateReportedWebsite(website); err != nil {
		return err
	}

	logger.Info("website reported",
		zap.String("url", rawURL),
		zap.Uint("website_id", website.ID))

	return nil
}

func allowReport(clientIP string) bool {
	if !redis.Available() {
		return reportFallbackLimit.Check(clientIP)
	}

	allowed, err := redis.AllowRequest("report:"+clientIP, reportWindowSeconds, reportMaxPerWindow)
	if err != nil {
		logger.Warn("report rate limit check failed, falling back",
			zap.Error(err))
		return reportFallbackLimit.Check(clientIP)
	}

	return allowed
}
