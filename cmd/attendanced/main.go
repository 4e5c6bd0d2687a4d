// attendanced serves the attendance API. Record creation validates the
// employee over the broker first and fails closed when it cannot.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/staffbridge/valimq"
	"github.com/staffbridge/valimq/internal/attendance"
	"github.com/staffbridge/valimq/internal/config"
	"github.com/staffbridge/valimq/internal/httpserver"
	"github.com/staffbridge/valimq/internal/logging"
	"github.com/staffbridge/valimq/internal/mongodb"
	"github.com/staffbridge/valimq/middleware"
	"github.com/staffbridge/valimq/rabbitmq"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, closeDB, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatalw("mongodb unavailable", "error", err)
	}
	defer closeDB()

	store := attendance.NewMongoStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatalw("ensure indexes", "error", err)
	}

	validator := middleware.Validator(rabbitmq.NewRequester(
		valimq.Addr(cfg.Broker.URL),
		valimq.WithTimeout(cfg.Broker.ValidateTimeout),
		valimq.WithClientID("attendanced"),
		valimq.WithLogger(logging.Adapter{S: logger}),
	))

	handler := attendance.NewHandler(store, validator, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Route("/api", handler.Routes)

	if err := httpserver.Run(cfg.HTTP, r, logger); err != nil {
		logger.Fatalw("server failed", "error", err)
	}
}
