// Package rest exposes the integration API consumed by the crawler and
// partner systems. List endpoints answer a paginated envelope of count,
// next, previous and results; validation failures answer per-field message
// lists.
package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/auth"
	"github.com/mal2-project/fake-shop-detection-database/internal/forms"
	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"github.com/mal2-project/fake-shop-detection-database/internal/service"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return 0, false
	}
	return uint(id), true
}

// paginate answers one page of a query in the list envelope
func paginate(c *gin.Context, q *gorm.DB, results any) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	err := q.Offset((page - 1) * pageSize).Limit(pageSize).Find(results).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    count,
		"next":     pageLink(c, page+1, pageSize, int(count)),
		"previous": pageLink(c, page-1, pageSize, int(count)),
		"results":  results,
	})
}

func pageLink(c *gin.Context, page, pageSize, count int) any {
	if page < 1 || (page-1)*pageSize >= count {
		return nil
	}

	query := c.Request.URL.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	return fmt.Sprintf("%s?%s", c.Request.URL.Path, query.Encode())
}

// urlFilter narrows a query by a case-insensitive URL substring
func urlFilter(c *gin.Context, q *gorm.DB, column string) *gorm.DB {
	if url := c.Query("url"); url != "" {
		q = q.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(url)+"%")
	}
	return q
}

// websiteFilter narrows a record query by its linked website
func websiteFilter(c *gin.Context, q *gorm.DB) *gorm.DB {
	if websiteID := c.Query("website_id"); websiteID != "" {
		q = q.Where("website_id = ?", websiteID)
	}
	return q
}

// fkFilter applies equality filters for the named foreign key parameters
func fkFilter(c *gin.Context, q *gorm.DB, names ...string) *gorm.DB {
	for _, name := range names {
		if value := c.Query(name); value != "" {
			q = q.Where(name+" = ?", value)
		}
	}
	return q
}

// fieldErrors answers a validation failure as per-field message lists
func fieldErrors(c *gin.Context, errs map[string][]forms.FieldError) {
	payload := map[string][]string{}
	for field, fieldErrs := range errs {
		for _, fieldErr := range fieldErrs {
			payload[field] = append(payload[field], fieldErr.Message)
		}
	}

	c.JSON(http.StatusBadRequest, payload)
}

// ListWebsites serves GET /api/v1/websites/
func ListWebsites(c *gin.Context) {
	q := repository.Websites().
		Preload("RiskScore").
		Preload("ReportedBy").
		Preload("WebsiteType").
		Preload("WebsiteCategory").
		Order("websites.id")

	q = urlFilter(c, q, "websites.url")
	q = fkFilter(c, q,
		"risk_score_id", "reported_by_id", "assigned_to_id",
		"website_type_id", "website_category_id")

	var websites []model.Website
	paginate(c, q, &websites)
}

// CreateWebsite serves POST /api/v1/websites/
func CreateWebsite(c *gin.Context) {
	var form service.WebsiteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	website, errs, err := service.CreateWebsite(&form, auth.CurrentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if errs != nil {
		fieldErrors(c, errs)
		return
	}

	c.JSON(http.StatusCreated, website)
}

// UpdateWebsite serves PUT /api/v1/websites/:id/
func UpdateWebsite(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var form service.WebsiteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	website, errs, err := service.UpdateWebsite(id, &form, auth.CurrentUser(c))
	if err != nil {
		if err == service.ErrWebsiteNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if errs != nil {
		fieldErrors(c, errs)
		return
	}

	c.JSON(http.StatusOK, website)
}

// DeleteWebsite serves DELETE /api/v1/websites/:id/
func DeleteWebsite(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := service.DeleteWebsite(id); err != nil {
		if err == service.ErrWebsiteNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetWebsite serves GET /api/v1/websites/:id/
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
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	c.JSON(http.StatusOK, website)
}

// ListFakeShops serves GET /api/v1/fake-shops/
func ListFakeShops(c *gin.Context) {
	q := repository.FakeShopRecords().
		Preload("Website").
		Preload("SearchResults").
		Preload("CompanyNames").
		Preload("WebsiteImages").
		Preload("WebsiteTexts").
		Preload("LanguageExamples").
		Order("fake_shop_records.id")

	q = urlFilter(c, q, "fake_shop_records.url")
	q = websiteFilter(c, q)

	var records []model.FakeShopRecord
	paginate(c, q, &records)
}

// GetFakeShop serves GET /api/v1/fake-shops/:id/
func GetFakeShop(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	record, err := repository.GetFakeShopRecordByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	c.JSON(http.StatusOK, record)
}

// CreateFakeShop serves POST /api/v1/fake-shops/
func CreateFakeShop(c *gin.Context) {
	saveFakeShop(c, nil)
}

// UpdateFakeShop serves PUT /api/v1/fake-shops/:id/
func UpdateFakeShop(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	saveFakeShop(c, &id)
}

func saveFakeShop(c *gin.Context, recordID *uint) {
	var sub service.FakeShopSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	record, validation, err := service.SaveFakeShop(recordID, &sub, auth.CurrentUser(c))
	if err != nil {
		if err == service.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if !validation.OK() {
		fieldErrors(c, validation.Errors)
		return
	}

	status := http.StatusOK
	if recordID == nil {
		status = http.StatusCreated
	}

	c.JSON(status, record)
}

// DeleteFakeShop serves DELETE /api/v1/fake-shops/:id/
func DeleteFakeShop(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := service.DeleteFakeShop(id); err != nil {
		if err == service.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCounterfeiters serves GET /api/v1/counterfeiters/
func ListCounterfeiters(c *gin.Context) {
	q := repository.CounterfeiterRecords().
		Preload("Website").
		Preload("ProductExamples").
		Preload("LanguageURLs").
		Order("counterfeiter_records.id")

	q = urlFilter(c, q, "counterfeiter_records.url")
	q = websiteFilter(c, q)

	var records []model.CounterfeiterRecord
	paginate(c, q, &records)
}

// GetCounterfeiter serves GET /api/v1/counterfeiters/:id/
func GetCounterfeiter(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	record, err := repository.GetCounterfeiterRecordByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	c.JSON(http.StatusOK, record)
}

// CreateCounterfeiter serves POST /api/v1/counterfeiters/
func CreateCounterfeiter(c *gin.Context) {
	saveCounterfeiter(c, nil)
}

// UpdateCounterfeiter serves PUT /api/v1/counterfeiters/:id/
func UpdateCounterfeiter(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	saveCounterfeiter(c, &id)
}

func saveCounterfeiter(c *gin.Context, recordID *uint) {
	var sub service.CounterfeiterSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	record, validation, err := service.SaveCounterfeiter(recordID, &sub, auth.CurrentUser(c))
	if err != nil {
		if err == service.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if !validation.OK() {
		fieldErrors(c, validation.Errors)
		return
	}

	status := http.StatusOK
	if recordID == nil {
		status = http.StatusCreated
	}

	c.JSON(status, record)
}

// DeleteCounterfeiter serves DELETE /api/v1/counterfeiters/:id/
func DeleteCounterfeiter(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := service.DeleteCounterfeiter(id); err != nil {
		if err == service.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListUsers serves GET /api/v1/users/
func ListUsers(c *gin.Context) {
	q := repository.Users().Order("users.id")

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var users []model.User
	paginate(c, q, &users)
}

// GetUser serves GET /api/v1/users/:id/
func GetUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	user, err := repository.GetUserByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser serves POST /api/v1/users/
func CreateUser(c *gin.Context) {
	var form model.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := service.CreateUserAccount(&form)
	if err != nil {
		switch err {
		case service.ErrUsernameExists:
			fieldErrors(c, map[string][]forms.FieldError{
				"username": {{Code: "unique", Message: "A user with that username already exists."}},
			})
		case service.ErrPasswordTooShort:
			fieldErrors(c, map[string][]forms.FieldError{
				"password": {{Code: "invalid", Message: "Password must be at least 8 characters."}},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser serves PUT /api/v1/users/:id/
func UpdateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var form model.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := service.UpdateUserAccount(id, &form)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		case service.ErrUsernameExists:
			fieldErrors(c, map[string][]forms.FieldError{
				"username": {{Code: "unique", Message: "A user with that username already exists."}},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser serves DELETE /api/v1/users/:id/
func DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if actor := auth.CurrentUser(c); actor != nil && actor.ID == id {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "You cannot delete your own account."})
		return
	}

	if err := service.DeleteUserAccount(id); err != nil {
		if err == service.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
