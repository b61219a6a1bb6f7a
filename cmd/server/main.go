package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	appbilling "github.com/society/backend/internal/application/billing"
	"github.com/society/backend/internal/application/identity"
	appnotification "github.com/society/backend/internal/application/notification"
	"github.com/society/backend/internal/application/report"
	appresident "github.com/society/backend/internal/application/resident"
	appteam "github.com/society/backend/internal/application/team"
	"github.com/society/backend/internal/domain/shared/valueobject"
	"github.com/society/backend/internal/infrastructure/auth"
	"github.com/society/backend/internal/infrastructure/config"
	"github.com/society/backend/internal/infrastructure/email"
	"github.com/society/backend/internal/infrastructure/logger"
	"github.com/society/backend/internal/infrastructure/persistence"
	"github.com/society/backend/internal/infrastructure/scheduler"
	"github.com/society/backend/internal/infrastructure/telemetry"
	"github.com/society/backend/internal/interfaces/http/handler"
	"github.com/society/backend/internal/interfaces/http/middleware"
	"github.com/society/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.NewFromConfig(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting society backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.Enabled {
		if err := telemetry.RegisterDBTracing(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		log.Info("Redis connected")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	residentRepo := persistence.NewGormResidentRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	teamRepo := persistence.NewGormTeamMemberRepository(db.DB)

	var sender appbilling.EmailSender
	if cfg.Email.Enabled {
		sender = email.NewSMTPSender(cfg.Email, log)
		log.Info("SMTP sender configured", zap.String("host", cfg.Email.Host))
	} else {
		sender = email.NewNoopSender(log)
	}

	fee := valueobject.NewMoneyPKRFromInt(cfg.Billing.MonthlyFee)

	authService := identity.NewAuthService(residentRepo, teamRepo, jwtService, blacklist, log)
	residentService := appresident.NewResidentService(residentRepo, log)
	paymentService := appbilling.NewPaymentService(residentRepo, ledgerRepo, notificationRepo, sender, fee, log)
	notificationService := appnotification.NewNotificationService(notificationRepo, log)
	teamService := appteam.NewTeamService(teamRepo, log)
	reportService := report.NewReportService(residentRepo, ledgerRepo, fee, log)

	reminderCfg := scheduler.DefaultReminderSchedulerConfig()
	reminderCfg.Enabled = cfg.Billing.ReminderEnabled
	reminderCfg.Hour = cfg.Billing.ReminderHour
	reminders := scheduler.NewReminderScheduler(reminderCfg, residentRepo, notificationRepo, fee, log)
	if err := reminders.Start(context.Background()); err != nil {
		log.Fatal("Failed to start dues reminder scheduler", zap.Error(err))
	}

	systemHandler := handler.NewSystemHandler(db)
	authHandler := handler.NewAuthHandler(authService, residentService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	userHandler := handler.NewUserHandler(residentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	teamHandler := handler.NewTeamHandler(paymentService, reportService)
	adminHandler := handler.NewAdminHandler(residentService, teamService, reportService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.TokenBlacklist = blacklist
	jwtCfg.Logger = log

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsCfg))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine).
		Register(systemHandler).
		Register(authHandler).
		Register(paymentHandler).
		Register(userHandler).
		Register(notificationHandler).
		Register(teamHandler).
		Register(adminHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := reminders.Stop(ctx); err != nil {
		log.Error("Error stopping dues reminder scheduler", zap.Error(err))
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
