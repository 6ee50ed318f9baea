package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/splax/localvercel/accounts/internal/cli"
	"github.com/splax/localvercel/accounts/pkg/config"
	"github.com/splax/localvercel/accounts/pkg/logger"
)

func main() {
	cfg := config.LoadAPIConfig()
	log := logger.New("accounts-api", logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.RunServer(ctx, cfg, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
