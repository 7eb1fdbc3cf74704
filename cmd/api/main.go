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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/johnquangdev/crm-backend/internal/adapter/handler"
	"github.com/johnquangdev/crm-backend/internal/adapter/repository"
	"github.com/johnquangdev/crm-backend/internal/infrastructure/cache"
	"github.com/johnquangdev/crm-backend/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/crm-backend/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/crm-backend/internal/infrastructure/mail"
	"github.com/johnquangdev/crm-backend/internal/usecase/auth"
	"github.com/johnquangdev/crm-backend/internal/usecase/crm"
	"github.com/johnquangdev/crm-backend/internal/usecase/meeting"
	"github.com/johnquangdev/crm-backend/internal/usecase/notification"
	"github.com/johnquangdev/crm-backend/internal/usecase/sweeper"
	"github.com/johnquangdev/crm-backend/pkg/config"
	"github.com/johnquangdev/crm-backend/pkg/jwt"
	pkglogger "github.com/johnquangdev/crm-backend/pkg/logger"
	pkgvalidator "github.com/johnquangdev/crm-backend/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize database
	log.Println("Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		log.Println("Running migrations...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Cache store: Redis when enabled, in-process fallback otherwise
	var store cache.Store
	if cfg.Redis.Enabled {
		log.Println("Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
	} else {
		log.Println("Redis disabled, using in-memory cache")
		store = cache.NewMemoryStore()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	contactRepo := repository.NewContactRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	dealRepo := repository.NewDealRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// JWT manager
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Mail transport
	var sender mail.Sender
	if cfg.Mail.Enabled {
		sender = mail.NewSMTPSender(cfg, logger)
	} else {
		log.Println("Mail disabled, notifications will be logged only")
		sender = mail.NewNoopSender(logger)
	}

	// Services
	dispatcher := notification.NewDispatcher(sender, userRepo, cfg.Mail.From, logger)
	authService := auth.NewAuthService(userRepo, sessionRepo, jwtManager, logger)
	meetingService := meeting.NewMeetingService(meetingRepo, contactRepo, dispatcher, store, logger)
	crmService := crm.NewCRMService(companyRepo, contactRepo, dealRepo, taskRepo, meetingRepo)

	// Handlers and routes
	authHandler := handler.NewAuthHandler(authService)
	meetingHandler := handler.NewMeetingHandler(meetingService)
	crmHandler := handler.NewCRMHandler(crmService)

	authRequired := httpmw.EchoAuth(authService)
	router := handler.NewRouter(cfg, authHandler, meetingHandler, crmHandler, authRequired)
	router.Setup(e)

	// Lifecycle sweeper runs beside the server and stops with it
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	if cfg.Sweeper.Enabled {
		sw := sweeper.NewSweeper(meetingRepo, cfg.Sweeper.Interval, logger)
		go sw.Run(sweepCtx)
	} else {
		log.Println("Sweeper disabled")
	}

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s (%s)", addr, cfg.Server.Environment)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}
