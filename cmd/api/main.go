package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/app"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/config"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/database"
	apphttp "github.com/gitgetgotguts/blueprint-career-forum/internal/http"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/handlers"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/metrics"
	httpmw "github.com/gitgetgotguts/blueprint-career-forum/internal/http/middleware"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/response"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/integration/mailer"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/observability"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/repository/postgres"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/security"
	"github.com/gitgetgotguts/blueprint-career-forum/migrations"
)

func main() {
	cfg := config.Load()

	logger := observability.NewLogger()
	defer logger.Sync()

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Migrate(db, migrations.FS); err != nil {
		logger.Error(fmt.Sprintf("migrations failed: %v", err))
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewStudentProfileRepository(db)
	offerRepo := postgres.NewOfferRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	var mail mailer.Client
	if cfg.MailerBaseURL != "" {
		mail = mailer.NewClient(cfg.MailerBaseURL, cfg.MailerServiceID, cfg.MailerTemplate, cfg.MailerAPIKey, nil)
	} else {
		logger.Warn("mailer not configured, credential mails disabled")
	}

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, refreshTokenRepo, jwtProvider, logger, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := app.NewUserService(userRepo, mail, logger)
	profileService := app.NewProfileService(profileRepo, userRepo)
	offerService := app.NewOfferService(offerRepo, userRepo)
	applicationService := app.NewApplicationService(applicationRepo, offerRepo, userRepo, profileRepo)
	statsService := app.NewStatsService(userRepo, offerRepo, applicationRepo)

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userService.EnsureSeedAdmin(startupCtx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		cancel()
		logger.Error(fmt.Sprintf("seed admin bootstrap failed: %v", err))
		os.Exit(1)
	}
	cancel()

	var limiter httpmw.Limiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error(fmt.Sprintf("invalid REDIS_URL: %v", err))
			os.Exit(1)
		}
		limiter = httpmw.NewRedisLimiter(redis.NewClient(opts))
		logger.Info("rate limiting backed by redis")
	} else {
		limiter = httpmw.NewRateLimiter()
	}

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService, limiter),
		UserHandler:        handlers.NewUserHandler(userService, statsService),
		ProfileHandler:     handlers.NewProfileHandler(profileService),
		OfferHandler:       handlers.NewOfferHandler(offerService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService, limiter),
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider),
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		errs <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(fmt.Sprintf("server error: %v", err))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info(fmt.Sprintf("received %s, shutting down", sig))
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("graceful shutdown failed: %v", err))
		}
	}
}
