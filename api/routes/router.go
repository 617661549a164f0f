// api/routes/router.go
package routes

import (
	"fmt"
	"net/http"
	"time"

	"iftar/internal/attendees"
	"iftar/internal/shared/config"
	"iftar/internal/shared/database"
	"iftar/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "iftar-site"

// Router holds all route dependencies
type Router struct {
	config  *config.Config
	db      *database.DB
	service attendees.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, service attendees.Service) *Router {
	return &Router{
		config:  cfg,
		db:      db,
		service: service,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	tmpl, err := attendees.ParseTemplates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	controller := attendees.NewController(
		r.service,
		r.eventDetails(),
		r.config.Registration.RequireConfirmation,
	)

	// Server-rendered pages
	attendees.SetupPageRoutes(engine, controller)

	// JSON API
	api := engine.Group(r.config.GetAPIBasePath())
	api.Use(middleware.CORS())
	{
		attendees.SetupAPIRoutes(api, controller)
	}

	return nil
}

func (r *Router) eventDetails() attendees.EventDetails {
	e := r.config.Event
	return attendees.EventDetails{
		Title:    e.Title,
		Subtitle: e.Subtitle,
		DateTime: e.DateTime,
		Welcome:  e.Welcome,
		Location: e.Location,
		Quote:    e.Quote,
		Footer:   e.Footer,
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":                "operational",
			"api_version":           r.config.APIVersion,
			"attendance_configured": r.config.Attendance.BaseURL != "",
			"require_confirmation":  r.config.Registration.RequireConfirmation,
			"notifications_enabled": r.service.NotificationsEnabled(),
			"timestamp":             time.Now(),
		})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
