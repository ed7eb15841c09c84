package main

import (
	"context"
	"net/http"
	"time"

	"duetchat/backend/internal/api/handler"
	"duetchat/backend/internal/chathub"
	"duetchat/backend/internal/config"
	"duetchat/backend/internal/models"
	"duetchat/backend/internal/storage"
	"duetchat/backend/internal/telegram"
	"duetchat/backend/internal/translate"
	"duetchat/backend/internal/workout"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config, logger *logrus.Logger) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect PostgreSQL")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logger.WithError(err).Fatal("Failed to connect Redis")
	}

	err = db.AutoMigrate(
		&models.Message{},
		&models.Translation{},
		&models.TranslationPreference{},
		&models.Reaction{},
		&models.PushSubscription{},
		&models.Workout{},
	)
	if err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	logger.Info("Database and Redis connections established, migrations complete")
	return db, rdb
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file loaded")
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	logger.Info("Starting duetchat backend...")

	db, rdb := setupDependencies(cfg, logger)
	s := storage.NewStorageService(db, rdb, logger)

	provider := translate.NewLibreTranslateClient(cfg.TranslateURL, "", logger)
	detector := translate.NewHeuristicDetector(provider, logger)
	translations := translate.NewService(s, provider, detector, logger)
	workouts := workout.NewService(s, logger)

	hub := chathub.NewManagerService(s, logger)
	if cfg.TelegramBotToken != "" {
		notifier, err := telegram.NewNotifierService(cfg.TelegramBotToken, s, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to start Telegram notifier")
		}
		hub.SetNotifier(notifier)
		go notifier.Run()
	}
	go hub.Run()

	r := gin.Default()
	h := handler.NewHandler(hub, s, translations, workouts, cfg, logger)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/languages", h.GetSupportedLanguages)
	r.POST("/api/workouts", h.CreateWorkout)
	r.GET("/api/workouts", h.GetWorkouts)

	private := r.Group("/", h.AuthRequired())
	{
		private.GET("/ws", h.ServeWebSocket)
		private.POST("/api/messages", h.SendMessage)
		private.GET("/api/messages", h.GetMessages)
		private.DELETE("/api/messages/:id", h.UnsendMessage)
		private.PUT("/api/messages/:id/reaction", h.SetReaction)
		private.DELETE("/api/messages/:id/reaction", h.RemoveReaction)
		private.POST("/api/translations", h.TranslateMessage)
		private.GET("/api/translations/:messageId", h.GetTranslations)
		private.POST("/api/translations/preferences", h.SetTranslationPreference)
	}

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	logger.WithField("port", cfg.Port).Info("HTTP server listening")
	logger.Fatal(server.ListenAndServe())
}
