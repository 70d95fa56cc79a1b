package counterfeiter

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/auth"
	"github.com/mal2-project/fake-shop-detection-database/internal/datatable"
	"github.com/mal2-project/fake-shop-detection-database/internal/pdf"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"github.com/mal2-project/fake-shop-detection-database/internal/service"
)

var renderer pdf.Renderer = pdf.NewHTMLRenderer()

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// GetTable returns the counterfeiters table manifest
func GetTable(c *gin.Context) {
	c.JSON(http.StatusOK, service.CounterfeitersTable().Manifest(auth.Perms(c)))
}

// GetTableData serves one draw of the counterfeiters table
func GetTableData(c *gin.Context) {
	payload, err := service.CounterfeitersTable().Run(
		repository.CounterfeiterRecords(),
		datatable.ParseParams(c.Request.URL.Query()),
		auth.Perms(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// GetRecord returns one record with its evidence for the edit dialog
func GetRecord(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// Add handles the add counterfeiter dialog
func Add(c *gin.Context) {
	save(c, nil)
}

// Edit handles the edit counterfeiter dialog
func Edit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	save(c, &id)
}

func save(c *gin.Context, recordID *uint) {
	var sub service.CounterfeiterSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	record, validation, err := service.SaveCounterfeiter(recordID, &sub, auth.CurrentUser(c))
	if err != nil {
		if err == service.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if !validation.OK() {
		c.JSON(http.StatusOK, gin.H{
			"submit":       "error",
			"errors":       validation.Errors,
			"requirements": validation.Requirements,
		})
		return
	}

	verb := "added"
	if recordID != nil {
		verb = "changed"
	}

	c.JSON(http.StatusOK, gin.H{
		"submit":       "success",
		"requirements": validation.Requirements,
		"toaster":      fmt.Sprintf("%s was %s.", record.DisplayName(), verb),
	})
}

// Delete removes a record with its evidence
func Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := service.DeleteCounterfeiter(id); err != nil {
		if err == service.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submit": "success", "toaster": "Counterfeiter was deleted."})
}

// Details streams the printable details export of a record
func Details(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		return
	}

	doc := service.BuildCounterfeiterDocument(record)

	body, contentType, err := renderer.Render(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename()))
	c.Data(http.StatusOK, contentType, body)
}
