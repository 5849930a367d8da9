package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/travelboard/internal/cli"
	"github.com/dmitrijs2005/travelboard/internal/flagx"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logger := logging.NewJSONLogger(os.Stderr, cfg.Env)
	app := cli.NewApp(cfg, os.Stdin, os.Stdout, logger)

	if err := app.Run(ctx, flagx.Positional(os.Args[1:])); err != nil {
		fmt.Fprintf(os.Stderr, "dashctl: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
