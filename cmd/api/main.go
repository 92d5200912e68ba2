package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"recert-portal-api/blob"
	"recert-portal-api/config"
	"recert-portal-api/middleware"
	"recert-portal-api/routes"
	"recert-portal-api/session"
	"recert-portal-api/store"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	settings := config.Load()
	if settings.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	// Every collaborator is constructed here and injected; nothing holds a
	// package-level connection.
	db, err := config.OpenDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("Database connected successfully")

	submissionStore := store.NewGormStore(db)

	blobStore, err := blob.Open(context.Background())
	if err != nil {
		log.Fatal("Failed to open blob store:", err)
	}

	resolver := session.NewResolver(
		submissionStore,
		[]byte(settings.SessionSecret),
		time.Duration(settings.MaxSessionSeconds)*time.Second,
	)

	if settings.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	routes.SetupRoutes(router, routes.Deps{
		Store:    submissionStore,
		Resolver: resolver,
		Blobs:    blobStore,
		Notify:   config.SendMail,
		Settings: settings,
	})

	port := settings.ServerPort
	log.Printf("Server starting on port %s", port)
	if settings.GinMode == "release" {
		log.Printf("Running in production mode")
	} else {
		log.Printf("Running in development mode")
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
