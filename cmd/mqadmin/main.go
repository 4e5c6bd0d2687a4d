// mqadmin is an operator tool for the protocol's queue topology. By default
// it declares the durable queues; with -reset it deletes and recreates them,
// dropping anything queued, to recover from a misconfigured deployment.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/staffbridge/valimq"
	"github.com/staffbridge/valimq/internal/config"
	"github.com/staffbridge/valimq/internal/logging"
	"github.com/staffbridge/valimq/rabbitmq"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	reset := flag.Bool("reset", false, "delete and recreate both queues (drops queued messages)")
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connector := rabbitmq.NewConnector(
		valimq.Addr(cfg.Broker.URL),
		valimq.WithBackoff(valimq.SingleAttempt{}),
		valimq.WithClientID("mqadmin"),
		valimq.WithLogger(logging.Adapter{S: logger}),
	)

	if *reset {
		if err := connector.ResetTopology(ctx); err != nil {
			logger.Fatalw("reset topology", "error", err)
		}
		logger.Infow("queues deleted and recreated",
			"queues", []string{valimq.RequestQueue, valimq.ResponseQueue})
		return
	}

	if err := connector.EnsureTopology(ctx); err != nil {
		logger.Fatalw("ensure topology", "error", err)
	}
	logger.Infow("queues declared",
		"queues", []string{valimq.RequestQueue, valimq.ResponseQueue})
}
