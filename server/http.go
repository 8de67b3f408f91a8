package server

import (
	"clipvault/config"
	"clipvault/constant"
	"clipvault/handler"
	"clipvault/pkg/rabbitmq"
	"clipvault/repository"
	"clipvault/service"
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	reconcileQueue      = "reconcile_queue"
	reconcileRoutingKey = "reconcile.request"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewRabbitMQConn")
	}

	repo := repository.NewRepo(cfg.DB)
	media := service.NewMinioMediaStore(cfg.Storage, cfg.MinIOBucket)

	var reconcilePub service.ReconcilePublisher
	if conn != nil {
		pub, pubErr := rabbitmq.NewPublisher(conn, cfg.Queue, reconcileRoutingKey)
		if pubErr != nil {
			zerolog.Ctx(ctx).Error().Err(pubErr).Msg("failed to create reconcile publisher")
		} else {
			reconcilePub = pub
		}
	}

	videoService := service.NewService(repo, media, reconcilePub, cfg)

	// Reconcile worker replays the failed leg of two-phase deletes and
	// ingests out-of-band.
	if conn != nil {
		reconcileConsumer := rabbitmq.NewConsumer(conn, cfg.Queue, reconcileQueue, reconcileRoutingKey, cfg.Server.Workers, handler.ReconcileHandler)
		go func() {
			err := reconcileConsumer.Consume(ctx, handler.ReconcileDependencies{
				Repo:  repo,
				Media: media,
			})
			if err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Msg("reconcile consumer error")
			}
		}()
	}

	r := gin.Default()
	addHealth(r)
	addRoutes(r, handler.New(videoService))

	srv := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("start http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

func addRoutes(r *gin.Engine, h *handler.Handler) {
	videos := r.Group("/videos")
	videos.GET("/public", h.ListPublic)

	protected := videos.Group("", handler.AuthRequired())
	protected.GET("/mine", h.ListOwned)
	protected.POST("", h.Ingest)
	protected.POST("/:id/visibility", h.ToggleVisibility)
	protected.DELETE("/:id", h.Delete)
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
