package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/onboard/internal/database"
	"github.com/mrlokans/onboard/internal/database/users"
	"github.com/mrlokans/onboard/internal/registration"
	"github.com/mrlokans/onboard/internal/reports"
	"github.com/mrlokans/onboard/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Registration *registration.Service
	Users        *users.Repository
	Registry     *reports.Registry
	Database     *database.Database

	// Background delivery (optional)
	TaskClient *tasks.Client

	// Settings
	BcryptCost        int
	ReportRecentLimit int

	// Application info
	Version string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.Database, cfg.TaskClient, cfg.Registry, cfg.Version)
	usersController := NewUsersController(cfg.Registration, cfg.Users, cfg.TaskClient, cfg.BcryptCost)
	reportsController := NewReportsController(cfg.Registry, cfg.Users, cfg.ReportRecentLimit)

	router.GET("/health", healthController.Status)

	api := router.Group("/api")
	{
		api.POST("/users", usersController.Register)
		api.GET("/users/:id", usersController.GetUser)
		api.GET("/reports", reportsController.ListFormats)
		api.GET("/reports/:format", reportsController.GetReport)
	}

	return router
}
