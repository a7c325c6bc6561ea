package main

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"automotora-api/config"
	"automotora-api/database"
	"automotora-api/logger"
	"automotora-api/middleware"
	"automotora-api/routes"
	"automotora-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("invalid configuration: " + err.Error())
	}

	log := logger.New(cfg.Env)

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := database.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Warnf("failed to seed database: %v", err)
	}

	imageHost, err := services.NewCloudinaryService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("failed to configure image host: %v", err)
	}

	mailer := services.NewEmailService(cfg, log)
	if !mailer.Enabled() {
		log.Info("SMTP not configured, inquiry notifications disabled")
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(120, 30))
	router.Use(middleware.AccessGate(cfg.JWTSecret))

	routes.SetupRoutes(router, db, cfg, imageHost, mailer, log)

	log.Infof("starting automotora API on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
