package main

import (
	"time"

	"github.com/xaenox/concept-analysis/internal/analysis"
	"github.com/xaenox/concept-analysis/internal/cache"
	"github.com/xaenox/concept-analysis/internal/scorer"
	"github.com/xaenox/concept-analysis/internal/server"
	"github.com/xaenox/concept-analysis/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize result cache
	var resultCache cache.Cache
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory result cache")
		resultCache = cache.NewMemoryCache()
	} else {
		logger.Info("Using PostgreSQL result cache")
		dbConfig := cache.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		}
		resultCache, err = cache.NewPostgresCache(dbConfig)
		if err != nil {
			logger.Fatal("Failed to initialize result cache", zap.Error(err))
		}
	}
	defer resultCache.Close()

	// Initialize scorer
	var sc scorer.Scorer
	if cfg.Analysis.UseGPTScorer {
		logger.Info("Using GPT scorer", zap.String("model", cfg.OpenAI.Model))
		sc = scorer.NewGPTScorer(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	} else {
		logger.Info("Using keyword scorer")
		sc = scorer.NewKeywordScorer()
	}

	// Initialize analysis pipeline
	pipeline := analysis.NewPipeline(sc, resultCache, logger)

	// Start the server
	srv := server.New(
		cfg.Server.Host,
		cfg.Server.Port,
		time.Duration(cfg.Analysis.TimeoutSeconds)*time.Second,
		pipeline,
		logger,
	)
	if err := srv.Start(); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
