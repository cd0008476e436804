package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/extension-registry/internal/cli"
	"github.com/yigit/extension-registry/internal/config"
	"github.com/yigit/extension-registry/internal/pkg/logger"
)

func main() {
	app, err := cli.NewApp(config.GetEnv("REGISTRY_CONFIG", ""))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize registry console")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	runErr := app.Run(ctx)
	stop()

	if err := app.Shutdown(); err != nil {
		fmt.Fprintln(os.Stderr, "shutdown:", err)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}
