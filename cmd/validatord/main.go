// validatord is the validator worker: it connects to RabbitMQ, consumes
// employee-validation requests one at a time and answers them against the
// employees database.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/staffbridge/valimq"
	"github.com/staffbridge/valimq/internal/config"
	"github.com/staffbridge/valimq/internal/employees"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, closeDB, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatalw("mongodb unavailable", "error", err)
	}
	defer closeDB()

	store := employees.NewMongoStore(db)

	responder := rabbitmq.NewResponder(
		middleware.Exists(store.Exists),
		valimq.Addr(cfg.Broker.URL),
		valimq.WithPrefetch(cfg.Broker.Prefetch),
		valimq.WithBackoff(valimq.FixedBackoff{
			MaxAttempts: cfg.Broker.ConnectAttempts,
			Interval:    cfg.Broker.ConnectInterval,
		}),
		valimq.WithClientID("validatord"),
		valimq.WithLogger(logging.Adapter{S: logger}),
	)

	logger.Infow("validator worker starting", "broker", cfg.Broker.URL)
	if err := responder.Run(ctx); err != nil {
		// Exhausted connect attempts; the supervisor decides restart policy.
		logger.Fatalw("validator worker exited", "error", err)
	}
}
