package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	configs "submission_service/config"
	"submission_service/internal/cache"
	"submission_service/internal/domain"
	"submission_service/internal/pkg/logging"
	"submission_service/internal/repository"
	"submission_service/internal/server/httpapi"
	"submission_service/internal/service"
	"submission_service/pkg/db"
	"submission_service/pkg/kafka"
	"submission_service/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbConfig := db.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.DBName,
		SSLMode:  cfg.DB.SSLMode,
	}

	pg, err := db.NewPostgres(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	assignmentRepo := repository.NewAssignmentRepository(pg.DB())
	submissionRepo := repository.NewSubmissionRepository(pg.DB())

	kafkaProducer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
	if err != nil {
		log.Fatalf("Failed to create Kafka producer: %v", err)
	}
	defer kafkaProducer.Close()

	var statsCache httpapi.Cache
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
		statsCache = cache.NewRedisCache(rdb)
	}

	clock := service.SystemClock()
	policy := domain.EligibilityPolicy{AllowResubmission: cfg.Policy.AllowResubmission}

	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, clock)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, policy, clock, kafkaProducer)
	reviewService := service.NewReviewService(submissionRepo, assignmentRepo, clock, kafkaProducer)
	statsService := service.NewStatsService(submissionRepo, assignmentRepo)

	router := httpapi.NewRouter(
		logging.New(log.ZapLogger),
		httpapi.NewAssignmentHandler(assignmentService),
		httpapi.NewSubmissionHandler(submissionService, reviewService, statsService, statsCache),
	)

	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.Timeout,
		WriteTimeout: cfg.HTTP.Timeout,
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	worker := NewReminderWorker(assignmentRepo, kafkaProducer, log, cfg.Worker.ReminderInterval, cfg.Worker.ReminderWindow)
	go worker.Start(workerCtx)

	go func() {
		log.Infof("Starting HTTP server on %s", cfg.HTTP.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Failed to shut down cleanly: %v", err)
	}
	log.Info("Server stopped")
}
