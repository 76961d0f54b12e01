package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/janani-ai/janani-server/internal/api"
	"github.com/janani-ai/janani-server/internal/bridge"
	"github.com/janani-ai/janani-server/internal/cache"
	"github.com/janani-ai/janani-server/internal/config"
	"github.com/janani-ai/janani-server/internal/domain"
	"github.com/janani-ai/janani-server/internal/history"
	"github.com/janani-ai/janani-server/internal/profile"
	"github.com/janani-ai/janani-server/internal/triage"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging)
	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Starting Janani triage server")

	// Stores
	profiles, err := profile.NewSQLiteStore(cfg.Storage.ProfileDBPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open profile store")
	}
	defer profiles.Close()

	triageLog, err := history.NewSQLiteLog(cfg.Storage.TriageLogDBPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open triage log")
	}
	defer triageLog.Close()

	// Optional response cache
	var resultCache domain.ResultCache
	if cfg.Cache.Enabled {
		resultCache, err = cache.New(logger, cfg.Cache)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize response cache")
		}
	}

	// Triage engine and emergency bridge
	triager := triage.NewDefaultService(logger, cfg.Triage)

	var dispatcher bridge.Dispatcher
	if cfg.Bridge.DispatchURL != "" {
		dispatcher = bridge.NewAgentDispatcher(logger, cfg.Bridge)
	}
	emergencyBridge := bridge.NewService(logger, cfg.Bridge, dispatcher)

	// Create server
	server := api.NewServer(logger, configManager, api.Dependencies{
		Triager:  triager,
		Bridge:   emergencyBridge,
		Profiles: profiles,
		Log:      triageLog,
		Cache:    resultCache,
	})

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	switch cfg.Output {
	case "stderr":
		logger.SetOutput(os.Stderr)
	default:
		logger.SetOutput(os.Stdout)
	}

	return logger
}
