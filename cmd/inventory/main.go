// Package main provides the interactive inventory console on stdin/stdout.
package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/observability"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "inventory")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = observability.Sync(logger) }()

	inv := inventory.NewInventory(logger)
	console := inventory.NewConsole(inv, os.Stdin, os.Stdout, cfg.Inventory.CurrencySymbol)
	if err := console.Run(); err != nil {
		logger.Error("inventory console", zap.Error(err))
		return
	}
	logger.Info("inventory closed",
		zap.Int("items", inv.Len()),
		zap.Int64("total_money", inv.TotalMoney()),
	)
}
