package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/specdock/specdock/internal/api"
	"github.com/specdock/specdock/internal/config"
	"github.com/specdock/specdock/internal/domain/registry"
	"github.com/specdock/specdock/internal/logger"
)

func main() {
	if err := run(true); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(serve bool) error {
	cfg, err := config.Load(config.File())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Init(cfg.Server.LogLevel, cfg.Server.LogFormat)
	log.Info("SpecDock - Discovering OpenAPI specifications...")

	index := registry.Scan(cfg.Server.SpecsDir, logger.WithComponent(log, "registry"))
	banner(log, cfg, index)

	server := api.New(logger.WithComponent(log, "api"), cfg, index)
	if !serve {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Starting specdock on %s...", cfg.Server.Address)
	return server.Run(ctx)
}

// banner logs what was discovered and where each spec is served, the
// first thing an operator looks for after startup.
func banner(log *logrus.Logger, cfg *config.Config, index *registry.Index) {
	if index.Len() == 0 {
		log.Warn("No OpenAPI specifications found")
		log.Warnf("Add .yaml, .yml or .json files to: %s", cfg.Server.SpecsDir)
		return
	}

	log.Infof("Found %d specifications:", index.Len())
	for _, entry := range index.Entries() {
		log.Infof("  - %s: %s", entry.Name, entry.FileName)
	}

	base := strings.TrimRight(cfg.Server.BaseURL, "/")
	log.Info("Available endpoints:")
	log.Infof("  - Collections: %s/", base)
	log.Infof("  - List specs: %s/specs", base)
	log.Infof("  - Health check: %s/health", base)
	for _, entry := range index.Entries() {
		log.Infof("  - %s (YAML): %s/%s/openapi.yaml", entry.Name, base, entry.Name)
		log.Infof("  - %s (JSON): %s/%s/openapi.json", entry.Name, base, entry.Name)
	}
}
