package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"castle-admin/core/broker"
	"castle-admin/core/cache"
	"castle-admin/core/config"
	"castle-admin/core/constants"
	"castle-admin/core/database"
	"castle-admin/core/logger"
	"castle-admin/core/mailer"
	appmw "castle-admin/core/middleware"
	"castle-admin/core/queue"
	"castle-admin/core/storage"
	"castle-admin/core/utils"
	"castle-admin/modules/booking"
	"castle-admin/modules/business"
	businessservice "castle-admin/modules/business/service"
	"castle-admin/modules/calendar"
	"castle-admin/modules/fleet"
	fleetrepository "castle-admin/modules/fleet/repository"
	fleetservice "castle-admin/modules/fleet/service"
	"castle-admin/modules/notification"
	"castle-admin/modules/overview"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sourcegraph/conc"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run loads configuration, wires every module and blocks until SIGINT or
// SIGTERM. The HTTP server and the queue worker stop together.
func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.Environment, cfg.Log.Level)

	loc, err := time.LoadLocation(cfg.GoogleAPI.Timezone)
	if err != nil {
		logger.Warn("Server:Run:BadTimezone", "timezone", cfg.GoogleAPI.Timezone, "error", err)
		loc, err = time.LoadLocation(constants.DefaultTimezone)
		if err != nil {
			return fmt.Errorf("load timezone: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	store := cache.NewCache(ctx, cache.NewRedisClient(cfg.Redis))
	defer store.Close()

	publisher := broker.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	defer publisher.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: utils.GenerateID}))
	e.Use(middleware.CORS())
	e.Use(appmw.RequestLogger())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "calendar": cfg.GoogleAPI.CalendarID != ""})
	})

	api := e.Group("/api")
	mw := appmw.NewMiddleware(cfg.Admin)

	businessSvc := businessservice.NewBusinessService(cfg.Business)
	business.Init(api, businessSvc, mw)
	businessName := "our team"
	if bc, appErr := businessSvc.Load(); appErr == nil && bc.Business.Name != "" {
		businessName = bc.Business.Name
	}

	calendarSvc := calendar.Init(ctx, api, cfg.GoogleAPI, store, loc, mw)

	castles := fleetrepository.NewServiceRepository(db)
	fleet.Init(api, castles, calendarSvc, newUploader(cfg.S3), newDescriber(ctx, cfg.Gemini), mw)

	worker := queue.NewWorker(cfg.Redis, cfg.Queue, loc)
	var enqueuer queue.Enqueuer
	if cfg.Queue.Enabled {
		client := queue.NewClient(cfg.Redis)
		defer client.Close()
		enqueuer = client
	} else {
		logger.Warn("Server:Run:QueueDisabled", "mode", "inline")
		enqueuer = queue.NewInline(worker.Mux())
	}

	var sender mailer.Sender = mailer.LogSender{}
	if mailer.Configured(cfg.SMTP) {
		sender = mailer.NewSMTPSender(cfg.SMTP)
	}
	notificationSvc := notification.Init(api, db, enqueuer, sender, businessName, mw)

	bookingSvc, bookings := booking.Init(api, booking.Deps{
		DB:        db,
		Castles:   castles,
		Calendar:  calendarSvc,
		Notifier:  notificationSvc,
		Features:  businessSvc,
		Publisher: publisher,
	}, mw)
	overview.Init(api, bookings, castles, calendarSvc, mw)

	mux := worker.Mux()
	mux.HandleFunc(constants.TaskSendEmail, notificationSvc.HandleSendEmail)
	mux.HandleFunc(constants.TaskSweepStatuses, bookingSvc.HandleSweepTask)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	var (
		wg        conc.WaitGroup
		httpErr   error
		workerErr error
	)
	wg.Go(func() {
		logger.Info("Server:Run:Listening", "addr", addr, "env", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			httpErr = err
			stop()
		}
	})
	if cfg.Queue.Enabled {
		if err := worker.Schedule(constants.SweepStatusesCronSpec, constants.TaskSweepStatuses, struct{}{}); err != nil {
			logger.Error("Server:Run:ScheduleFailed", "error", err)
		}
		wg.Go(func() {
			if err := worker.Run(ctx); err != nil {
				workerErr = err
				stop()
			}
		})
	}
	wg.Go(func() {
		<-ctx.Done()
		logger.Info("Server:Run:ShuttingDown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server:Run:ShutdownError", "error", err)
		}
	})
	wg.Wait()

	return stderrors.Join(httpErr, workerErr)
}

func newUploader(cfg config.S3Config) storage.Uploader {
	if !storage.Configured(cfg) {
		logger.Warn("Server:Run:StorageDisabled")
		return nil
	}
	return storage.NewS3Uploader(cfg)
}

func newDescriber(ctx context.Context, cfg config.GeminiConfig) fleetservice.Describer {
	if cfg.APIKey == "" {
		return nil
	}
	describer, err := fleetservice.NewGeminiDescriber(ctx, cfg)
	if err != nil {
		logger.Warn("Server:Run:GeminiUnavailable", "error", err)
		return nil
	}
	return describer
}
