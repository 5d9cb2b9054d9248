// Command chartkit-lambda serves GET /chart?jsonData=... behind API Gateway.
//
// Configuration comes from the environment (see package config); a .env file
// in the working directory is loaded first when present.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/matzehuels/chartkit/pkg/config"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/server"
)

func main() {
	_ = godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	cfg, err := config.Load(os.Getenv("CHARTKIT_CONFIG"))
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	level, _ := cfg.Log.ParsedLevel()
	logger.SetLevel(level)
	logger.SetFormatter(cfg.Log.Formatter())

	ctx := context.Background()
	st, err := cfg.OpenStore(ctx)
	if err != nil {
		logger.Fatal("open store", "backend", cfg.Store.Backend, "err", err)
	}
	c, err := cfg.OpenCache(ctx)
	if err != nil {
		logger.Warn("cache unavailable, continuing without", "backend", cfg.Cache.Backend, "err", err)
	}

	runner := pipeline.NewRunner(c, cfg.Keyer(), st, logger)
	runner.SignTTL = cfg.Store.TTL

	srv := server.New(server.Options{Runner: runner, Logger: logger, MaxBodyBytes: cfg.Server.MaxBodyBytes})
	lambda.Start(srv.HandleLambda)
}
