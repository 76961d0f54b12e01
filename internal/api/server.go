package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/janani-ai/janani-server/internal/domain"
	"github.com/janani-ai/janani-server/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	logger        *logrus.Logger
	configManager domain.ConfigManager
	router        *gin.Engine
	server        *http.Server

	triager  domain.Triager
	bridge   domain.EmergencyBridge
	profiles domain.ProfileStore
	log      domain.TriageLog
	cache    domain.ResultCache
}

// Dependencies carries everything the HTTP layer needs. Cache may be nil
// when caching is disabled.
type Dependencies struct {
	Triager  domain.Triager
	Bridge   domain.EmergencyBridge
	Profiles domain.ProfileStore
	Log      domain.TriageLog
	Cache    domain.ResultCache
}

// NewServer creates a new HTTP server instance
func NewServer(logger *logrus.Logger, configManager domain.ConfigManager, deps Dependencies) *Server {
	cfg := configManager.GetConfig()

	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(middleware.AuditLogger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.NewRateLimiter(logger, cfg.RateLimit).Middleware())

	server := &Server{
		logger:        logger,
		configManager: configManager,
		router:        router,
		triager:       deps.Triager,
		bridge:        deps.Bridge,
		profiles:      deps.Profiles,
		log:           deps.Log,
		cache:         deps.Cache,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// Router exposes the gin engine for handler tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/triage", s.handleTriage)
		v1.POST("/emergency/bridge", s.handleEmergencyBridge)
		v1.GET("/profile/:user_id", s.handleGetProfile)
		v1.PUT("/profile/:user_id", s.handlePutProfile)
		v1.DELETE("/profile/:user_id", s.handleDeleteProfile)
		v1.GET("/history/:user_id", s.handleListHistory)
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	})
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-User-ID, X-Correlation-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
