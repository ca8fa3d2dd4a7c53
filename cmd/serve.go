package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rozeen-shrestha/confession/database"
	"github.com/rozeen-shrestha/confession/middleware"
	"github.com/rozeen-shrestha/confession/ratelimit"
	"github.com/rozeen-shrestha/confession/render"
	"github.com/rozeen-shrestha/confession/server"
	"github.com/rozeen-shrestha/confession/services"
	"github.com/rozeen-shrestha/confession/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB, logger)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Disconnect(disconnectCtx); err != nil {
			logger.Warn("mongodb disconnect", zap.Error(err))
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	limiter := ratelimit.NewFixedWindow(cfg.RateLimitMax, cfg.RateLimitWindow)
	go limiter.Run(ctx, cfg.RateLimitWindow)

	confessions := services.NewConfessionService(
		db.Confessions(),
		services.NewSequenceNamer(db.Counters()),
		limiter,
		services.ConfessionOptions{
			MaxTextLength:  cfg.MaxTextLength,
			DefaultPerPage: cfg.DefaultPerPage,
			MaxPerPage:     cfg.MaxPerPage,
			Location:       cfg.Location,
		},
		logger,
	)
	auth := services.NewAuthService(db.Users(), services.AuthOptions{
		Secret:     []byte(cfg.SessionSecret),
		SessionTTL: cfg.SessionTTL,
		BcryptCost: cfg.BcryptCost,
	}, logger)

	renderer, err := render.NewRenderer()
	if err != nil {
		return err
	}
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if store == nil {
		logger.Info("image publishing disabled, STORAGE_DRIVER not set")
	}
	export := services.NewExportService(confessions, renderer, store, storage.ConfessionImageKey, logger)

	router, err := server.NewRouter(server.Deps{
		Confessions:    confessions,
		Auth:           auth,
		Export:         export,
		Authorizer:     middleware.NewAuthorizer([]byte(cfg.SessionSecret)),
		AllowedOrigins: cfg.AllowedOrigins,
		CookieSecure:   cfg.CookieSecure,
		MaxTextLength:  cfg.MaxTextLength,
		DefaultPerPage: cfg.DefaultPerPage,
		Log:            logger,
	})
	if err != nil {
		return err
	}

	return server.Run(ctx, ":"+cfg.Port, router, logger)
}
