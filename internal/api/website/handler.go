package website

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/auth"
	"github.com/mal2-project/fake-shop-detection-database/internal/datatable"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"github.com/mal2-project/fake-shop-detection-database/internal/service"
)

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// GetTable returns the table manifest of one website work queue
func GetTable(c *gin.Context) {
	scope := service.WebsiteScopeByName(c.Param("scope"))
	if scope == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		return
	}

	c.JSON(http.StatusOK, scope.Spec().Manifest(auth.Perms(c)))
}

// GetTableData serves one draw of a website work queue
func GetTableData(c *gin.Context) {
	scope := service.WebsiteScopeByName(c.Param("scope"))
	if scope == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		return
	}

	payload, err := scope.Spec().Run(
		scope.Query(),
		datatable.ParseParams(c.Request.URL.Query()),
		auth.Perms(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// GetLookups returns the select options of the website dialogs
func GetLookups(c *gin.Context) {
	types, err := repository.GetWebsiteTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	categories, err := repository.GetWebsiteCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	riskScores, err := repository.GetWebsiteRiskScores()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	reporters, err := repository.GetWebsiteReporters()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	users, err := repository.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"website_types":      types,
		"website_categories": categories,
		"risk_scores":        riskScores,
		"reported_by":        reporters,
		"users":              users,
	})
}

// GetWebsite returns one website for the edit dialog
func GetWebsite(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	website, err := repository.GetWebsiteByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if website == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		return
	}

	c.JSON(http.StatusOK, website)
}

// Add handles the add website dialog
func Add(c *gin.Context) {
	var form service.WebsiteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	website, fieldErrors, err := service.CreateWebsite(&form, auth.CurrentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if fieldErrors != nil {
		c.JSON(http.StatusOK, gin.H{"submit": "error", "errors": fieldErrors})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submit":  "success",
		"toaster": website.DisplayName() + " was added.",
	})
}

// Edit handles the edit website dialog
func Edit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var form service.WebsiteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	website, fieldErrors, err := service.UpdateWebsite(id, &form, auth.CurrentUser(c))
	if err != nil {
		if err == service.ErrWebsiteNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if fieldErrors != nil {
		c.JSON(http.StatusOK, gin.H{"submit": "error", "errors": fieldErrors})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submit":  "success",
		"toaster": website.DisplayName() + " was changed.",
	})
}

// Delete removes a website
func Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := service.DeleteWebsite(id); err != nil {
		if err == service.ErrWebsiteNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submit": "success", "toaster": "Website was deleted."})
}

// Check redirects the check action to the matching record dialog. Websites
// without an assignee or a checkable type answer 404, exposing nothing
// about why.
func Check(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	target, err := service.CheckRedirect(id)
	if err != nil {
		if err == service.ErrWebsiteNotFound || err == service.ErrNotCheckable {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, target)
}
