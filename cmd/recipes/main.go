package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/samvad-recipes/internal/app"
	"github.com/samvad-hq/samvad-recipes/internal/cli"
	"github.com/samvad-hq/samvad-recipes/internal/config"
	"github.com/samvad-hq/samvad-recipes/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "recipes: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer logger.Close()
	root := cli.NewRootCommand(func(ctx context.Context) (cli.Runtime, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}

		log, err := logger.Init(cfg)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		logger.InfoObj("recipes starting", "config", cfg)

		a, err := app.New(ctx, cfg, log)
		if err != nil {
			logger.ErrorObj("failed to initialize app", "error", err.Error())
			return nil, err
		}
		return a, nil
	})

	return root.ExecuteContext(ctx)
}
