package main

import (
	"context"
	"log"

	"github.com/ventline/ventline/internal/client/cli"
	"github.com/ventline/ventline/internal/client/config"
	"github.com/ventline/ventline/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
