package report

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mal2-project/fake-shop-detection-database/internal/service"
)

// Submit takes an anonymous report of a suspicious website. The endpoint is
// public and rate limited per client address, the answer never reveals
// whether the URL was already known.
func Submit(c *gin.Context) {
	var report service.WebsiteReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	err := service.SubmitReport(&report, c.ClientIP())
	if err != nil {
		switch err {
		case service.ErrReportRateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "Too many reports. Please try again later."})
		case service.ErrReportInvalidURL:
			c.JSON(http.StatusBadRequest, gin.H{"detail": "A URL is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Thank you for your report."})
}
