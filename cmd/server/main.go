package main

import (
	"context"
	"flag"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"mboaimmo/server/config"
	"mboaimmo/server/internal/api"
	"mboaimmo/server/internal/favorites"
	"mboaimmo/server/internal/i18n"
	"mboaimmo/server/internal/images"
	"mboaimmo/server/internal/notifications"
	"mboaimmo/server/internal/properties"
	"mboaimmo/server/internal/session"
	"mboaimmo/server/internal/store"
)

func main() {
	seed := flag.Bool("seed", false, "load fixture data into the configured database")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// The store is chosen once here; every service below gets it injected
	// and never re-checks which backend it runs on.
	var (
		st    store.Store
		files *store.FileStore
		rdb   *redis.Client
	)
	if cfg.DatabaseConfigured() {
		sqlStore, err := store.NewSQLStore(cfg.Database.PostgresDSN, cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open database")
		}
		st = sqlStore
		logger.Info("Running on the SQL backend")

		if cfg.Redis.Addr != "" {
			rdb = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
			})
		}
	} else {
		files, err = store.NewFileStore(cfg.DataDir, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open data directory")
		}
		st, err = store.NewMockStore(files, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load mock store")
		}
		logger.Warn("No database configured, running on the local mock store")
	}
	defer st.Close()

	if *seed {
		if err := store.EnsureSeed(context.Background(), st, logger); err != nil {
			logger.WithError(err).Fatal("Failed to seed database")
		}
	}

	translator := i18n.New(files, logger)
	tokens := session.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.ExpiryHours)

	svc := api.Services{
		Store:         st,
		Properties:    properties.NewService(st, logger),
		Favorites:     favorites.NewService(st, logger),
		Notifications: notifications.NewService(st, rdb, logger),
		Sessions:      session.NewService(st, files, tokens, logger),
		Uploader:      images.NewUploader(cfg.Images.Endpoint, cfg.Images.APIKey, cfg.Images.MaxBytes, logger),
		Translator:    translator,
	}

	if _, err := svc.Properties.FetchAll(context.Background()); err != nil {
		logger.WithError(err).Error("Initial property fetch failed")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	handler := api.NewHandler(cfg, svc, logger)
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
