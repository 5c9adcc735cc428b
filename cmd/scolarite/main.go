package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/noah-isme/scolarite-dao/internal/client"
	"github.com/noah-isme/scolarite-dao/internal/dao"
	"github.com/noah-isme/scolarite-dao/internal/service"
	"github.com/noah-isme/scolarite-dao/pkg/config"
	"github.com/noah-isme/scolarite-dao/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	cli := &commandLine{
		reg:       dao.NewRegistry(client.New(cfg.API, logr), logr, metrics),
		metrics:   metrics,
		exportDir: cfg.Export.Dir,
		workers:   cfg.Export.Workers,
		out:       os.Stdout,
		errOut:    os.Stderr,
	}

	if err := cli.run(ctx, os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
