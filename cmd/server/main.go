package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/pocketshop/backend/internal/config"
	"github.com/pocketshop/backend/internal/db"
	"github.com/pocketshop/backend/internal/es"
	"github.com/pocketshop/backend/internal/events"
	"github.com/pocketshop/backend/internal/httpserver"
	"github.com/pocketshop/backend/internal/logging"
	"github.com/pocketshop/backend/internal/middleware"
	"github.com/pocketshop/backend/internal/repo"
	"github.com/pocketshop/backend/internal/service"
)

func main() {
	cfg := config.MustLoad()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	}

	gormRepo := repo.NewGormRepo(database)

	vendorSvc := &service.VendorService{Repo: gormRepo, Producer: producer}
	orderSvc := &service.OrderService{Repo: gormRepo, Producer: producer}
	favSvc := &service.FavouriteService{Repo: gormRepo}
	authSvc := &service.AuthService{
		Repo:          gormRepo,
		JWTSecret:     cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
	}

	deps := &httpserver.Deps{
		Auth:      &httpserver.AuthHTTP{Svc: authSvc},
		Shop:      &httpserver.ShopHTTP{Vendor: vendorSvc},
		Product:   &httpserver.ProductHTTP{Vendor: vendorSvc},
		Order:     &httpserver.OrderHTTP{Orders: orderSvc, Vendor: vendorSvc},
		Favourite: &httpserver.FavouriteHTTP{Svc: favSvc},
		JWTSecret: cfg.JWTAccessSecret,
	}

	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Printf("warning: elasticsearch unavailable: %v", err)
		} else {
			vendorSvc.ES = esClient
			deps.Search = httpserver.NewSearchHTTP(esClient)
		}
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}
