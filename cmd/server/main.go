package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mbalagam/marketplace/internal/activity"
	"github.com/mbalagam/marketplace/internal/alert"
	"github.com/mbalagam/marketplace/internal/config"
	"github.com/mbalagam/marketplace/internal/events"
	"github.com/mbalagam/marketplace/internal/handlers"
	"github.com/mbalagam/marketplace/internal/logging"
	"github.com/mbalagam/marketplace/internal/middleware"
	"github.com/mbalagam/marketplace/internal/service"
	"github.com/mbalagam/marketplace/internal/store"
	"github.com/mbalagam/marketplace/internal/token"
	httpserver "github.com/mbalagam/marketplace/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	defer logger.Sync()

	st, err := store.Open(configuration.DATA_DIR)
	if err != nil {
		logger.Fatal("cannot open store", zap.Error(err))
	}

	var producer *events.Producer
	if brokers := configuration.KafkaBrokers(); len(brokers) > 0 {
		producer = events.NewProducer(brokers, "activity_events")
	}

	var notifier *alert.Notifier
	if configuration.ALERT_URL != "" {
		notifier = &alert.Notifier{
			URL:      configuration.ALERT_URL,
			User:     configuration.ALERT_USER,
			Password: configuration.ALERT_PASSWORD,
			Log:      logger,
		}
	}

	activityLog, err := activity.NewLogger(configuration.LOGS_DIR, logger, producer, notifier)
	if err != nil {
		logger.Fatal("cannot open activity log", zap.Error(err))
	}

	issuer := &token.Issuer{Secret: []byte(configuration.JWT_SECRET), TTL: 15 * time.Minute}

	catalogSvc := &service.CatalogService{Store: st, Activity: activityLog}
	purchaseSvc := &service.PurchaseService{Store: st, Activity: activityLog}
	userSvc := &service.UserService{Store: st, Activity: activityLog, Tokens: issuer}
	activitySvc := &service.ActivityService{Store: st, Activity: activityLog}
	adminSvc := &service.AdminService{Store: st, Activity: activityLog}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(middleware.RequestLogger(activityLog))

	deps := httpserver.Deps{
		ItemHandler:     &handlers.ItemHandler{Catalog: catalogSvc},
		PurchaseHandler: &handlers.PurchaseHandler{Purchases: purchaseSvc},
		AuthHandler:     &handlers.AuthHandler{Users: userSvc},
		ActivityHandler: &handlers.ActivityHandler{Activity: activitySvc},
		AdminHandler:    &handlers.AdminHandler{Admin: adminSvc},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", configuration.HTTP_ADDR))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
