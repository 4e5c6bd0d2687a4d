// employeesd serves the employee records API. It owns the authoritative
// employee storage the validator worker reads.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/staffbridge/valimq/internal/config"
	"github.com/staffbridge/valimq/internal/employees"
	"github.com/staffbridge/valimq/internal/httpserver"
	"github.com/staffbridge/valimq/internal/logging"
	"github.com/staffbridge/valimq/internal/mongodb"
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

	store := employees.NewMongoStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatalw("ensure indexes", "error", err)
	}

	handler := employees.NewHandler(store, logger)

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
