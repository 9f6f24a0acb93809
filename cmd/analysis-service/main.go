package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/lumina-health/platform/pkg/analysis"
	"github.com/lumina-health/platform/pkg/common/config"
	"github.com/lumina-health/platform/pkg/common/database"
	"github.com/lumina-health/platform/pkg/common/kafka"
	"github.com/lumina-health/platform/pkg/common/logger"
	"github.com/lumina-health/platform/pkg/healthdata"
	"github.com/lumina-health/platform/pkg/observability/metrics"
)

func main() {
	logger.Init()
	metrics.Init()
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}

	sourceRepo := healthdata.NewRepository(db)
	if err := sourceRepo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to migrate health data tables")
	}

	sessionRepo := analysis.NewRepository(db)
	if err := sessionRepo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to migrate analysis tables")
	}

	rules, err := analysis.LoadRules(cfg.AnalysisRulesPath)
	if err != nil {
		logger.Log.WithError(err).Warn("Falling back to default analysis rules")
	}

	var cache analysis.ResultCache
	if redisClient := database.GetRedis(); redisClient != nil {
		cache = analysis.NewRedisResultCache(redisClient, cfg.ResultCacheTTL)
	}

	var events analysis.EventPublisher
	var consumer *kafka.Consumer
	if cfg.KafkaEnabled {
		producer := kafka.NewProducer("health.analysis")
		defer producer.Close()
		events = producer

		consumer = kafka.NewConsumer(analysis.TopicDataIngested, cfg.KafkaGroupID)
		defer consumer.Close()
	}

	service := analysis.NewService(
		sessionRepo,
		sourceRepo,
		analysis.DefaultRegistry(rules),
		rules,
		cfg.AnalysisModelVer,
		cfg.AnalysisMaxWorkers,
		cache,
		events,
	)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if consumer != nil {
		go func() {
			if err := consumer.Consume(consumerCtx, service.HandleIngestionEvent); err != nil && err != context.Canceled {
				logger.Log.WithError(err).Error("Ingestion consumer stopped")
			}
		}()
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods("GET")

	api := router.PathPrefix("/api/v1/analysis").Subrouter()
	analysis.NewHandler(service).Register(api)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Analysis Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Analysis Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	if err := database.ClosePostgres(); err != nil {
		logger.Log.WithError(err).Error("Failed to close PostgreSQL connection")
	}
	if err := database.CloseRedis(); err != nil {
		logger.Log.WithError(err).Error("Failed to close Redis connection")
	}

	logger.Log.Info("Analysis Service stopped")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
