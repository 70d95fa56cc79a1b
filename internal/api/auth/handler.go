package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/jwt"
	"github.com/mal2-project/fake-shop-detection-database/internal/service"
)

// Login handles user login
func Login(c *gin.Context) {
	var req model.UserLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	tokenResp, err := service.Login(req.Username, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokenResp)
}

// Register handles self-service signup. The endpoint is public and rate
// limited, new accounts wait for an admin to activate them.
func Register(c *gin.Context) {
	var req model.UserRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	_, err := service.Register(&req, c.ClientIP())
	if err != nil {
		switch err {
		case service.ErrSignupRateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "Too many signups. Please try again later."})
		case service.ErrUsernameExists:
			c.JSON(http.StatusBadRequest, gin.H{"detail": "A user with that username already exists"})
		case service.ErrPasswordTooShort:
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Password must be at least 8 characters"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"detail": "Account created. An administrator will activate it."})
}

// GetCurrentUser returns the authenticated user
func GetCurrentUser(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// AuthMiddleware validates the JWT token and loads the account behind it.
// Deactivated accounts are rejected even with a valid token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header missing"})
			c.Abort()
			return
		}

		token, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			}
			c.Abort()
			return
		}

		user, err := service.GetUserByID(claims.UserID)
		if err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// RequirePerms guards a route group behind role permissions
func RequirePerms(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !model.HasPerms(CurrentUser(c), permissions) {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Permission denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the account loaded by AuthMiddleware, nil outside it
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}

	user, ok := value.(*model.User)
	if !ok {
		return nil
	}

	return user
}

// Perms returns a permission check bound to the authenticated user, in the
// shape the table engine consumes.
func Perms(c *gin.Context) func([]string) bool {
	user := CurrentUser(c)
	return func(permissions []string) bool {
		return model.HasPerms(user, permissions)
	}
}
