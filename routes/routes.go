package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"services-backend/config"
	"services-backend/controllers"
	"services-backend/services"
	"services-backend/utils"
)

func SetupRouter(db *gorm.DB, catalog *services.CatalogService, categories *services.CategoryService, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := controllers.AuthController{DB: db}
	serviceController := controllers.ServiceController{Catalog: catalog}
	categoryController := controllers.CategoryController{Categories: categories}

	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		svc := api.Group("/services")
		{
			svc.POST("", serviceController.CreateService)
			svc.GET("", serviceController.GetServices)
			svc.GET("/:id", serviceController.GetService)
			svc.PUT("/:id", serviceController.UpdateService)
			svc.DELETE("/:id", serviceController.DeleteService)
			svc.PUT("/:id/barbers", serviceController.AssignBarbers)
			svc.GET("/:id/barbers", serviceController.GetServiceBarbers)
		}

		categoriesGroup := api.Group("/categories")
		{
			categoriesGroup.POST("", categoryController.CreateCategory)
			categoriesGroup.GET("", categoryController.GetCategories)
		}
	}

	return r
}
