package main

import (
	"context"
	"flag"
	"log"
	"os"

	"EconPull/internal/di"
	"EconPull/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	mode := flag.String("mode", "batch", "run mode: batch or serve")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s mode=%s period=%s pairs=%v", cfg.Environment, *mode, cfg.Price.Period, cfg.Price.Pairs)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	log.Printf("clickhouse: connected and schema ready - db: %s", cfg.ClickHouse.Database)
	log.Printf("kafka: connected brokers=%v topic=%s", cfg.Kafka.Brokers, cfg.Kafka.AlignedTopic)

	switch *mode {
	case "batch":
		// One-shot reconstruction and alignment run
		if err := app.RunBatch(context.Background()); err != nil {
			log.Printf("batch run error: %v", err)
			os.Exit(1)
		}
	case "serve":
		// HTTP API plus optional Kafka consumer and job queue
		// (blocks until signal)
		if err := app.RunServe(); err != nil {
			log.Printf("app error: %v", err)
			os.Exit(1)
		}
	default:
		log.Fatalf("unknown mode %q (want batch or serve)", *mode)
	}
}
