package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/ikonesteve/email-imap-proxy/api/handlers"
	"github.com/ikonesteve/email-imap-proxy/api/middleware"
	"github.com/ikonesteve/email-imap-proxy/config"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
	"github.com/ikonesteve/email-imap-proxy/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, cfg *config.Config) {
	if s == nil {
		panic("Services cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))
	r.Use(middleware.RequestIDMiddleware())

	// Health check endpoint (outside the auth gate)
	r.GET("/health", handlers.HealthCheck(cfg.AppConfig.ServiceName))

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-PROXY-API-KEY",
		ValidAPIKey: cfg.AppConfig.APIKey,
	})

	// API group with version
	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.TracingMiddleware())
	{
		connections := api.Group("/connection")
		{
			connections.POST("/test", handlers.TestConnection(s.IMAPService))
		}

		emails := api.Group("/emails")
		{
			emails.POST("/fetch", handlers.FetchEmails(s.IMAPService))
			emails.POST("/send", handlers.SendEmail(s.SMTPService))
			emails.POST("/update", handlers.UpdateEmail(s.IMAPService))
		}

		folders := api.Group("/folders")
		{
			folders.POST("/list", handlers.ListFolders(s.IMAPService))
		}
	}
}
