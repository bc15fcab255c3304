package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"teampulse/internal/app"
	"teampulse/internal/blob"
	"teampulse/internal/config"
	"teampulse/internal/logger"
	"teampulse/internal/service"
	"teampulse/internal/transport/rest"
	"teampulse/internal/transport/ws"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	zlog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	aiConfig := config.DefaultAIConfig()
	if aiConfig.IsEnabled() {
		zlog.Info("inference configured",
			zap.String("analysisModel", aiConfig.Models.Analysis),
			zap.String("meetingModel", aiConfig.Models.Meeting))
	} else {
		zlog.Info("inference API key not set, heuristic analyzer only")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		zlog.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	zlog.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.Mongo.Database)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		zlog.Fatal("failed to ping Redis", zap.Error(err))
	}
	zlog.Info("connected to Redis")

	// Repositories and caches
	a := app.New(db, rdb)

	// External collaborators
	notifier := service.NewEmailNotifier(cfg.Notify.Endpoint, cfg.Notify.APIKey,
		time.Duration(cfg.Notify.TimeoutSec)*time.Second)
	blobStore := blob.NewHTTPStore(cfg.Blob.Endpoint,
		time.Duration(cfg.Blob.TimeoutSec)*time.Second)

	// WebSocket hub
	wsHub := ws.NewHub(zlog)

	// Services
	authSvc := service.NewAuthService(cfg.Auth.HostUsername, cfg.Auth.HostPassword, cfg.Auth.JWTSecret)
	collectorSvc := service.NewCollectorService(a.ResponseRepo, zlog)
	analyzerSvc := service.NewAnalyzerService(aiConfig, zlog)
	recorderSvc := service.NewRecorderService(a.InsightRepo, a.SignalRepo, a.MemberRepo, a.SignalCache, notifier, zlog)
	pipelineSvc := service.NewPipelineService(collectorSvc, analyzerSvc, recorderSvc, blobStore, zlog)
	healthSvc := service.NewHealthService(a.MemberRepo, a.SignalRepo, a.SignalCache, a.HealthCache, zlog)
	alertSvc := service.NewAlertService(a.MemberRepo, a.SignalRepo, a.SignalCache, notifier, zlog)
	dispatchSvc := service.NewDispatchService(a.SurveyRepo, a.MemberRepo, notifier, zlog)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	recorderSvc.SetBroadcaster(wsHub)
	alertSvc.SetBroadcaster(wsHub)

	wsHandler := ws.NewHandler(wsHub, authSvc, zlog)

	router := rest.NewRouter(&rest.Container{
		AuthService:     authSvc,
		PipelineService: pipelineSvc,
		HealthService:   healthSvc,
		AlertService:    alertSvc,
		DispatchService: dispatchSvc,
		SignalRepo:      a.SignalRepo,
		InsightRepo:     a.InsightRepo,
		WSHandler:       wsHandler,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
