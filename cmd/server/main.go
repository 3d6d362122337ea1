package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/adapter/cache/redis"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/adapter/httpapi"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/adapter/messaging/nats"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/adapter/repository/mongodb"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/adapter/storage/local"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/adapter/storage/s3"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/attachment"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/config"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/mailer"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/platform/logger"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/platform/metrics"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/platform/tracer"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/cache"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/storage"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/usecase"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "visit-sri-lanka-backend"

func main() {
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	tp, err := tracer.Init(serviceName, cfg.Tracing.OTLPEndpoint, log)
	if err != nil {
		log.Warn("Tracing disabled", zap.Error(err))
	}

	mongoClient, err := mongodb.NewConnection(&cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	var fileStore storage.FileStore
	switch cfg.Storage.Driver {
	case "s3":
		fileStore, err = s3.NewStore(cfg.Storage.MinIOEndpoint, cfg.Storage.MinIOAccessKey,
			cfg.Storage.MinIOSecretKey, cfg.Storage.MinIOBucket, cfg.Storage.MinIOUseSSL, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
	default:
		fileStore, err = local.NewStore(cfg.Storage.LocalBaseDir, log)
		if err != nil {
			log.Fatal("Failed to initialize local storage", zap.Error(err))
		}
	}
	files := attachment.NewLifecycle(fileStore, log)

	var cacheRepo cache.CacheRepository
	redisClient, err := redis.NewRedisClient(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, running without cache", zap.Error(err))
	} else {
		cacheRepo = redis.NewRedisCacheRepository(redisClient, log)
		defer redisClient.Close()
	}

	publisher, err := nats.NewPublisher(&cfg.NATS, log)
	if err != nil {
		log.Warn("NATS unavailable, running without events", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	m := metrics.NewManager(serviceName)
	if cfg.Metrics.Port != "" {
		go func() {
			if err := metrics.StartServer(cfg.Metrics.Port, log, m.Registry); err != nil {
				log.Error("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	hotelRepo := mongodb.NewListingRepository(db, usecase.HotelVariant.Collection, usecase.HotelVariant.New)
	restaurantRepo := mongodb.NewListingRepository(db, usecase.RestaurantVariant.Collection, usecase.RestaurantVariant.New)
	cabRepo := mongodb.NewListingRepository(db, usecase.CabServiceVariant.Collection, usecase.CabServiceVariant.New)
	guideRepo := mongodb.NewListingRepository(db, usecase.GuideVariant.Collection, usecase.GuideVariant.New)
	tripPlanRepo := mongodb.NewTripPlanRepository(db)
	userRepo := mongodb.NewUserRepository(db, log)

	var pub usecase.EventPublisher
	var tripPub usecase.TripPlanPublisher
	if publisher != nil {
		pub = publisher
		tripPub = publisher
	}

	hotels := usecase.NewListingUsecase(usecase.HotelVariant, hotelRepo, files, cacheRepo, pub, m, log)
	restaurants := usecase.NewListingUsecase(usecase.RestaurantVariant, restaurantRepo, files, cacheRepo, pub, m, log)
	cabs := usecase.NewListingUsecase(usecase.CabServiceVariant, cabRepo, files, cacheRepo, pub, m, log)
	guides := usecase.NewListingUsecase(usecase.GuideVariant, guideRepo, files, cacheRepo, pub, m, log)
	tripPlans := usecase.NewTripPlanUsecase(tripPlanRepo, hotelRepo, restaurantRepo, cabRepo, guideRepo, tripPub, m, log)
	users := usecase.NewUserUsecase(userRepo, mailer.NewSender(&cfg.SMTP, log), cfg.Auth, log)

	localUploads := ""
	if cfg.Storage.Driver != "s3" {
		localUploads = cfg.Storage.LocalBaseDir
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Hotels:          httpapi.NewListingHandler(hotels, fileStore, files, log),
		Restaurants:     httpapi.NewListingHandler(restaurants, fileStore, files, log),
		Cabs:            httpapi.NewListingHandler(cabs, fileStore, files, log),
		Guides:          httpapi.NewListingHandler(guides, fileStore, files, log),
		TripPlans:       httpapi.NewTripPlanHandler(tripPlans, log),
		Users:           httpapi.NewUserHandler(users, log),
		JWTSecret:       cfg.Auth.JWTSecret,
		ServiceName:     serviceName,
		LocalUploadsDir: localUploads,
		Metrics:         m,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error("MongoDB disconnect failed", zap.Error(err))
	}
	if tp != nil {
		if err := tp.Shutdown(ctx); err != nil {
			log.Error("Tracer shutdown failed", zap.Error(err))
		}
	}
	log.Info("Shutdown complete")
}
