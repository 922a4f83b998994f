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
	"github.com/labstack/echo/v4/middleware"

	"github.com/avolkov/storefront/internal/config"
	"github.com/avolkov/storefront/internal/es"
	"github.com/avolkov/storefront/internal/events"
	"github.com/avolkov/storefront/internal/handlers"
	"github.com/avolkov/storefront/internal/logging"
	"github.com/avolkov/storefront/internal/middleware/csrf"
	loggingmw "github.com/avolkov/storefront/internal/middleware/logging"
	"github.com/avolkov/storefront/internal/session"
	"github.com/avolkov/storefront/internal/storage"
	httpserver "github.com/avolkov/storefront/internal/transport/http"
	"github.com/avolkov/storefront/internal/validate"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	store, err := storage.New(configuration.DATA_DIR)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}

	sessions := &session.Manager{Secret: []byte(configuration.SESSION_SECRET)}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	} else {
		logger.Info("KAFKA_ADDRESS not set, event publishing disabled")
	}

	productHandler := &handlers.ProductHandler{
		Store:    store,
		Producer: producer,
		ESIndex:  configuration.ES_INDEX,
	}
	searchHandler := &handlers.SearchHandler{Index: configuration.ES_INDEX}
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		productHandler.ES = client
		searchHandler.ES = client
	} else {
		logger.Info("ES_URL not set, search index disabled")
	}

	e := echo.New()
	e.Validator = validate.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(csrf.Middleware(csrf.Config{
		SkipPaths: []string{"/api/auth/register", "/api/auth/login"},
	}))

	deps := httpserver.Deps{
		Sessions:       sessions,
		AuthHandler:    &handlers.AuthHandler{Store: store, Sessions: sessions, Producer: producer},
		ProductHandler: productHandler,
		CartHandler:    &handlers.CartHandler{Store: store, Producer: producer},
		OrderHandler:   &handlers.OrderHandler{Store: store, Producer: producer},
		BlogHandler:    &handlers.BlogHandler{Store: store},
		SearchHandler:  searchHandler,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
