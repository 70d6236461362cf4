package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	"github.com/BruksfildServices01/booking-api/internal/auth"
	"github.com/BruksfildServices01/booking-api/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-api/internal/db"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/infra/cache"
	"github.com/BruksfildServices01/booking-api/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/booking-api/internal/infra/repository"
	"github.com/BruksfildServices01/booking-api/internal/infra/storage"
	"github.com/BruksfildServices01/booking-api/internal/logger"
	"github.com/BruksfildServices01/booking-api/internal/middleware"
	"github.com/BruksfildServices01/booking-api/internal/notify"
	"github.com/BruksfildServices01/booking-api/internal/routes"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	locker, slotCache, closeRedis := connectRedis(ctx, cfg, log)
	defer closeRedis()

	google, err := auth.NewGoogle(ctx, cfg.GoogleClientID)
	if err != nil {
		log.Fatal().Err(err).Msg("google verifier")
	}

	var pictures storage.PictureStore
	if cfg.S3.Enabled() {
		pictures = storage.NewS3Store(cfg.S3)
	} else {
		log.Warn().Msg("S3 not configured, picture uploads disabled")
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	var mailer notify.Mailer = notify.LogMailer{Log: log}
	if cfg.SMTP.Enabled() {
		mailer = notify.NewSMTPMailer(cfg.SMTP)
	}
	reminders := notify.NewReminders(infraRepo.NewBookingGormRepository(db), mailer, log)
	scheduler, err := notify.StartScheduler(cfg.ReminderCron, reminders, log)
	if err != nil {
		log.Fatal().Err(err).Msg("reminder scheduler")
	}
	defer func() { <-scheduler.Stop().Done() }()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)
	go limiter.Run(ctx.Done())

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(log),
		middleware.RequestLogging(),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Tokens:   auth.NewTokens(cfg.JWTSecret),
		Google:   google,
		Locker:   locker,
		Cache:    slotCache,
		Pictures: pictures,
		Audit:    dispatcher,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// connectRedis falls back to no-op lock and cache when Redis is unreachable;
// the database row lock still prevents double booking.
func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) (domain.Locker, domain.SlotCache, func()) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, running without slot cache and lock")
		_ = client.Close()
		return lock.Noop{}, cache.Noop{}, func() {}
	}

	return lock.NewRedisLock(client),
		cache.NewSlotCache(client, cfg.SlotCacheTTL, log),
		func() { _ = client.Close() }
}
