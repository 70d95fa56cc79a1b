package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/auth"
	"github.com/mal2-project/fake-shop-detection-database/internal/datatable"
	"github.com/mal2-project/fake-shop-detection-database/internal/model"
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

// GetUsersTable returns the user administration table manifest
func GetUsersTable(c *gin.Context) {
	c.JSON(http.StatusOK, service.UsersTable().Manifest(auth.Perms(c)))
}

// GetUsersTableData serves one draw of the user administration table
func GetUsersTableData(c *gin.Context) {
	payload, err := service.UsersTable().Run(
		repository.Users(),
		datatable.ParseParams(c.Request.URL.Query()),
		auth.Perms(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// GetUser returns one account for the edit dialog
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
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// AddUser handles the add user dialog
func AddUser(c *gin.Context) {
	var form model.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := service.CreateUserAccount(&form)
	if err != nil {
		switch err {
		case service.ErrUsernameExists:
			c.JSON(http.StatusOK, gin.H{"submit": "error", "errors": gin.H{
				"username": []gin.H{{"code": "unique", "message": "A user with that username already exists."}},
			}})
		case service.ErrPasswordTooShort:
			c.JSON(http.StatusOK, gin.H{"submit": "error", "errors": gin.H{
				"password": []gin.H{{"code": "invalid", "message": "Password must be at least 8 characters."}},
			}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"submit": "success", "toaster": user.Username + " was added."})
}

// EditUser handles the edit user dialog
func EditUser(c *gin.Context) {
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
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		case service.ErrUsernameExists:
			c.JSON(http.StatusOK, gin.H{"submit": "error", "errors": gin.H{
				"username": []gin.H{{"code": "unique", "message": "A user with that username already exists."}},
			}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"submit": "success", "toaster": user.Username + " was changed."})
}

// SetPassword handles the set password dialog
func SetPassword(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if err := service.SetUserPassword(id, req.Password); err != nil {
		switch err {
		case service.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		case service.ErrPasswordTooShort:
			c.JSON(http.StatusOK, gin.H{"submit": "error", "errors": gin.H{
				"password": []gin.H{{"code": "invalid", "message": "Password must be at least 8 characters."}},
			}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"submit": "success", "toaster": "Password was changed."})
}

// DeleteUser removes an account. Admins cannot delete themselves.
func DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if actor := auth.CurrentUser(c); actor != nil && actor.ID == id {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "You cannot delete your own account"})
		return
	}

	if err := service.DeleteUserAccount(id); err != nil {
		if err == service.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submit": "success", "toaster": "User was deleted."})
}
