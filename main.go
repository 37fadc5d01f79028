package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gabapdb/sourcing-pettycash/cmd"
	"github.com/gabapdb/sourcing-pettycash/internal/config"
	"github.com/gabapdb/sourcing-pettycash/internal/container"
	"github.com/gabapdb/sourcing-pettycash/internal/database"
	"github.com/gabapdb/sourcing-pettycash/internal/logger"
	"github.com/gabapdb/sourcing-pettycash/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		appLogger.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		appLogger.Fatal("failed to connect to the database: " + err.Error())
	}
	defer db.Close()

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := database.RunMigrations("migrations", appLogger); err != nil {
			appLogger.Fatal("failed to run migrations: " + err.Error())
		}
	}

	cfg, err := config.Load(os.Getenv("DROPDOWNS_CONFIG"))
	if err != nil {
		appLogger.Fatal("failed to load dropdown config: " + err.Error())
	}

	app := container.NewAppContainer(db, cfg, appLogger)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware(appLogger))

	// Watch endpoints hold the connection open; the timeout applies to
	// everything else.
	timeout := middleware.TimeoutMiddleware(30 * time.Second)
	router.Use(func(c *gin.Context) {
		if strings.HasSuffix(c.Request.URL.Path, "/watch") {
			c.Next()
			return
		}
		timeout(c)
	})

	if version := os.Getenv("APP_VERSION"); version != "" {
		middleware.SetVersion(version)
	}
	router.GET("/health", middleware.HealthCheckHandler())

	app.LoginHandler.RegisterRoutes(router)

	api := router.Group("/api")
	app.ClientHandler.RegisterRoutes(api)
	app.ProjectHandler.RegisterRoutes(api)
	app.ListHandler.RegisterRoutes(api)
	app.ItemHandler.RegisterRoutes(api)
	app.ApprovalHandler.RegisterRoutes(api)
	app.DropdownHandler.RegisterRoutes(api)
	app.ReportHandler.RegisterRoutes(api)
	app.UserHandler.RegisterRoutes(api)
	if app.SheetsHandler != nil {
		app.SheetsHandler.RegisterRoutes(api)
	}

	middleware.UpdateHealthStatus("ok")

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}
	if err := router.Run(host); err != nil {
		appLogger.Fatal("server stopped: " + err.Error())
	}
}
