package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/admin"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/auth"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/counterfeiter"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/fakeshop"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/report"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/rest"
	"github.com/mal2-project/fake-shop-detection-database/internal/api/website"
)

// SetupRouter configures all routes
func SetupRouter(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(RequestIDMiddleware())

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Fake-shop detection database is running",
			"version": "1.0.0",
		})
	})

	// Public endpoints
	r.POST("/report/", report.Submit)

	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/login", auth.Login)
		authRoutes.POST("/register", auth.Register)
		authRoutes.GET("/me", auth.AuthMiddleware(), auth.GetCurrentUser)
	}

	// Back-office routes
	db := r.Group("/db")
	db.Use(auth.AuthMiddleware())
	{
		db.GET("/websites/:scope/", auth.RequirePerms("website.view"), website.GetTable)
		db.GET("/websites/:scope/data/", auth.RequirePerms("website.view"), website.GetTableData)
		db.POST("/websites/add/", auth.RequirePerms("website.add"), website.Add)

		db.GET("/lookups/", auth.RequirePerms("website.view"), website.GetLookups)

		singleWebsite := db.Group("/website")
		{
			singleWebsite.GET("/:id/", auth.RequirePerms("website.view"), website.GetWebsite)
			singleWebsite.POST("/:id/edit/", auth.RequirePerms("website.change"), website.Edit)
			singleWebsite.POST("/:id/delete/", auth.RequirePerms("website.delete"), website.Delete)
			singleWebsite.GET("/:id/check/", auth.RequirePerms("website.check"), website.Check)
		}

		db.GET("/fake-shops/", auth.RequirePerms("fakeshop.view"), fakeshop.GetTable)
		db.GET("/fake-shops/data/", auth.RequirePerms("fakeshop.view"), fakeshop.GetTableData)
		db.POST("/fake-shops/add/", auth.RequirePerms("fakeshop.add"), fakeshop.Add)

		fakeShopGroup := db.Group("/fake-shop")
		{
			fakeShopGroup.GET("/:id/", auth.RequirePerms("fakeshop.view"), fakeshop.GetRecord)
			fakeShopGroup.POST("/:id/edit/", auth.RequirePerms("fakeshop.change"), fakeshop.Edit)
			fakeShopGroup.POST("/:id/delete/", auth.RequirePerms("fakeshop.delete"), fakeshop.Delete)
			fakeShopGroup.GET("/:id/details/", auth.RequirePerms("fakeshop.view"), fakeshop.Details)
		}

		db.GET("/counterfeiters/", auth.RequirePerms("counterfeiter.view"), counterfeiter.GetTable)
		db.GET("/counterfeiters/data/", auth.RequirePerms("counterfeiter.view"), counterfeiter.GetTableData)
		db.POST("/counterfeiters/add/", auth.RequirePerms("counterfeiter.add"), counterfeiter.Add)

		counterfeiterGroup := db.Group("/counterfeiter")
		{
			counterfeiterGroup.GET("/:id/", auth.RequirePerms("counterfeiter.view"), counterfeiter.GetRecord)
			counterfeiterGroup.POST("/:id/edit/", auth.RequirePerms("counterfeiter.change"), counterfeiter.Edit)
			counterfeiterGroup.POST("/:id/delete/", auth.RequirePerms("counterfeiter.delete"), counterfeiter.Delete)
			counterfeiterGroup.GET("/:id/details/", auth.RequirePerms("counterfeiter.view"), counterfeiter.Details)
		}

		db.GET("/users/", auth.RequirePerms("user.view"), admin.GetUsersTable)
		db.GET("/users/data/", auth.RequirePerms("user.view"), admin.GetUsersTableData)
		db.POST("/users/add/", auth.RequirePerms("user.add"), admin.AddUser)

		userGroup := db.Group("/user")
		{
			userGroup.GET("/:id/", auth.RequirePerms("user.view"), admin.GetUser)
			userGroup.POST("/:id/edit/", auth.RequirePerms("user.change"), admin.EditUser)
			userGroup.POST("/:id/set-password/", auth.RequirePerms("user.change"), admin.SetPassword)
			userGroup.POST("/:id/delete/", auth.RequirePerms("user.delete"), admin.DeleteUser)
		}
	}

	// Integration API
	apiV1 := r.Group("/api/v1")
	apiV1.Use(auth.AuthMiddleware())
	{
		apiV1.GET("/websites/", auth.RequirePerms("website.view"), rest.ListWebsites)
		apiV1.POST("/websites/", auth.RequirePerms("website.add"), rest.CreateWebsite)
		apiV1.GET("/websites/:id/", auth.RequirePerms("website.view"), rest.GetWebsite)
		apiV1.PUT("/websites/:id/", auth.RequirePerms("website.change"), rest.UpdateWebsite)
		apiV1.DELETE("/websites/:id/", auth.RequirePerms("website.delete"), rest.DeleteWebsite)

		apiV1.GET("/fake-shops/", auth.RequirePerms("fakeshop.view"), rest.ListFakeShops)
		apiV1.POST("/fake-shops/", auth.RequirePerms("fakeshop.add"), rest.CreateFakeShop)
		apiV1.GET("/fake-shops/:id/", auth.RequirePerms("fakeshop.view"), rest.GetFakeShop)
		apiV1.PUT("/fake-shops/:id/", auth.RequirePerms("fakeshop.change"), rest.UpdateFakeShop)
		apiV1.DELETE("/fake-shops/:id/", auth.RequirePerms("fakeshop.delete"), rest.DeleteFakeShop)

		apiV1.GET("/counterfeiters/", auth.RequirePerms("counterfeiter.view"), rest.ListCounterfeiters)
		apiV1.POST("/counterfeiters/", auth.RequirePerms("counterfeiter.add"), rest.CreateCounterfeiter)
		apiV1.GET("/counterfeiters/:id/", auth.RequirePerms("counterfeiter.view"), rest.GetCounterfeiter)
		apiV1.PUT("/counterfeiters/:id/", auth.RequirePerms("counterfeiter.change"), rest.UpdateCounterfeiter)
		apiV1.DELETE("/counterfeiters/:id/", auth.RequirePerms("counterfeiter.delete"), rest.DeleteCounterfeiter)

		apiV1.GET("/users/", auth.RequirePerms("user.view"), rest.ListUsers)
		apiV1.POST("/users/", auth.RequirePerms("user.add"), rest.CreateUser)
		apiV1.GET("/users/:id/", auth.RequirePerms("user.view"), rest.GetUser)
		apiV1.PUT("/users/:id/", auth.RequirePerms("user.change"), rest.UpdateUser)
		apiV1.DELETE("/users/:id/", auth.RequirePerms("user.delete"), rest.DeleteUser)
	}
}

// RequestIDMiddleware tags every request with an id for log correlation
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}
