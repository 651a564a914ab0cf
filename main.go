package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/helper-marketplace/config"
	"github.com/Eursukkul/helper-marketplace/internal/consumer"
	"github.com/Eursukkul/helper-marketplace/internal/handler"
	"github.com/Eursukkul/helper-marketplace/internal/middleware"
	"github.com/Eursukkul/helper-marketplace/internal/repository"
	"github.com/Eursukkul/helper-marketplace/internal/service"
	"github.com/Eursukkul/helper-marketplace/pkg/database"
	"github.com/Eursukkul/helper-marketplace/pkg/logger"
	"github.com/Eursukkul/helper-marketplace/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Env)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("invalid schedule timezone", zap.Error(err))
	}
	policy, err := service.ParseConflictPolicy(cfg.ScheduleConflictPolicy)
	if err != nil {
		log.Fatal("invalid schedule conflict policy", zap.Error(err))
	}

	store := repository.NewStore(db)

	// Messaging is optional: without RABBITMQ_URL events are not published and
	// the directory is maintained out of band.
	var publisher service.EventPublisher
	var consumerDone <-chan struct{}
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
		if err != nil {
			log.Fatal("failed to connect publisher to RabbitMQ", zap.Error(err))
		}
		defer pub.Close()
		publisher = pub

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, log)
		if err != nil {
			log.Fatal("failed to connect consumer to RabbitMQ", zap.Error(err))
		}
		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatal("failed to start consuming", zap.Error(err))
		}
		consumerDone = consumer.NewDirectoryConsumer(store, log).Start(msgs)
		defer func() {
			mqConsumer.Close()
			<-consumerDone
		}()
	} else {
		log.Warn("RABBITMQ_URL not set, event publishing and directory sync disabled")
	}

	ledger := service.NewScheduleLedger(location, cfg.ScheduleSlotDuration, policy)
	bookingSvc := service.NewBookingService(store, ledger, publisher, log)
	workerSvc := service.NewWorkerService(store, ledger)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.ContextTimeout(cfg.RequestTimeout))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "booking-service"})
	})

	api := e.Group("/api/v1", middleware.Authenticate(cfg.JWTSecret))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api)
	handler.NewWorkerHandler(workerSvc).RegisterRoutes(api)

	go func() {
		log.Info("booking service starting", zap.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
}
