package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/ikonesteve/email-imap-proxy/api"
	"github.com/ikonesteve/email-imap-proxy/config"
	"github.com/ikonesteve/email-imap-proxy/internal/logger"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
	"github.com/ikonesteve/email-imap-proxy/services"
)

type Server struct {
	config       *config.Config
	log          logger.Logger
	httpServer   *http.Server
	router       *gin.Engine
	services     *services.Services
	tracerCloser io.Closer
}

func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	// Initialize tracing
	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)

	// Initialize services
	svcs := services.InitServices(appLogger)

	// Initialize Gin
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	return &Server{
		config:       cfg,
		log:          appLogger,
		router:       router,
		services:     svcs,
		tracerCloser: closer,
		httpServer: &http.Server{
			Addr:    ":" + cfg.AppConfig.APIPort,
			Handler: router,
		},
	}, nil
}

func (s *Server) Run() error {
	api.RegisterRoutes(s.router, s.services, s.config)

	// Start HTTP server in a goroutine
	go func() {
		s.log.Infof("HTTP server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Errorf("HTTP server error: %v", err)
		}
	}()

	return s.waitForShutdown()
}

func (s *Server) waitForShutdown() error {
	// Set up signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	s.log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if s.tracerCloser != nil {
		s.tracerCloser.Close()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("HTTP server shutdown error: %v", err)
		return err
	}

	s.log.Info("HTTP server shut down")
	return nil
}
