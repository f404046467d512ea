package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/datapoolml/outreach-crm/internal/handlers"
	"github.com/datapoolml/outreach-crm/internal/logger"
)

const (
	corsMaxAgeHours = 12
)

// Handlers bundles the route handlers wired by the bootstrap.
type Handlers struct {
	Leads        *handlers.LeadHandler
	FundingLeads *handlers.FundingHandler
	CustomFields *handlers.CustomFieldHandler
	Metadata     *handlers.MetadataHandler
}

func NewRouter(h Handlers, corsOrigins []string, log logger.Logger) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1
	v1 := router.Group("/api/v1")

	leads := v1.Group("/leads")
	leads.GET("", h.Leads.List)
	leads.POST("", h.Leads.Create)
	leads.GET("/export", h.Leads.Export)
	leads.POST("/import", h.Leads.Import)
	leads.POST("/import/excel", h.Leads.ImportExcel)
	leads.GET("/:id", h.Leads.GetByID)
	leads.PATCH("/:id", h.Leads.Patch)
	leads.DELETE("/:id", h.Leads.Delete)
	leads.POST("/:id/hypothesis", h.Leads.RegenerateHypothesis)
	leads.POST("/:id/email", h.Leads.DraftEmail)

	funding := v1.Group("/funding-leads")
	funding.GET("", h.FundingLeads.List)
	funding.POST("", h.FundingLeads.Create)
	funding.GET("/export", h.FundingLeads.Export)
	funding.POST("/import", h.FundingLeads.Import)
	funding.GET("/:id", h.FundingLeads.GetByID)
	funding.PATCH("/:id", h.FundingLeads.Patch)
	funding.DELETE("/:id", h.FundingLeads.Delete)
	funding.POST("/:id/email", h.FundingLeads.DraftEmail)

	fields := v1.Group("/custom-fields")
	fields.GET("", h.CustomFields.List)
	fields.POST("", h.CustomFields.Create)

	v1.GET("/metadata", h.Metadata.Extract)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
