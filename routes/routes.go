package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"automotora-api/config"
	"automotora-api/controllers"
	"automotora-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, imageHost services.ImageHost, mailer *services.EmailService, log *logrus.Logger) {
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	vehicleController := controllers.NewVehicleController(db)
	inquiryController := controllers.NewInquiryController(db, mailer, log)
	imageController := controllers.NewImageController(db, imageHost, log)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"status":  "healthy",
		})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.GET("/me", authController.Me)
	}

	// Method-level protection for these groups lives in the access gate
	// (middleware.AccessGate), not here: GET on vehicles and POST on
	// inquiries are public, the rest requires a token.
	vehiculos := api.Group("/vehiculos")
	{
		vehiculos.GET("", vehicleController.ListVehicles)
		vehiculos.POST("", vehicleController.CreateVehicle)
		vehiculos.GET("/:id", vehicleController.GetVehicle)
		vehiculos.PUT("/:id", vehicleController.UpdateVehicle)
		vehiculos.DELETE("/:id", vehicleController.DeleteVehicle)

		vehiculos.POST("/:id/imagenes", imageController.Associate)
		vehiculos.DELETE("/:id/imagenes/:imagenId", imageController.Remove)
	}

	consultas := api.Group("/consultas")
	{
		consultas.GET("", inquiryController.ListInquiries)
		consultas.POST("", inquiryController.CreateInquiry)
		consultas.GET("/:id", inquiryController.GetInquiry)
		consultas.PUT("/:id", inquiryController.UpdateInquiry)
		consultas.DELETE("/:id", inquiryController.DeleteInquiry)
	}

	api.POST("/upload", imageController.Upload)
}
