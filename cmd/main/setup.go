package main

import (
	"fmt"
	"time"

	"market-pulse/src/aggregator"
	"market-pulse/src/config"
	"market-pulse/src/data_source/yahoo"
	"market-pulse/src/fallback"
	"market-pulse/src/logger"
	"market-pulse/src/market"
	"market-pulse/src/models"
	"market-pulse/src/network"
	"market-pulse/src/registry"
)

// app holds the wired components shared by every command.
type app struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *registry.Registry
	Service  *market.Service
}

// -----------------------------------------------------------------------------

// setupApp loads the configuration and wires the data path.
func setupApp(configPath string) (*app, error) {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return nil, err
	}

	appLogger := logger.NewLogger(cfg.MConfig, cfg.Name)

	reg, err := registry.FromConfig(cfg.MConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build symbol registry: %w", err)
	}
	appLogger.Info("Registry loaded with %d symbols", reg.Len())

	return &app{
		Config:   cfg,
		Logger:   appLogger,
		Registry: reg,
		Service:  setupService(cfg.MConfig, reg),
	}, nil
}

// -----------------------------------------------------------------------------

func setupService(cfg *models.MConfig, reg *registry.Registry) *market.Service {
	netManager := network.NewAsyncNetworkManager(cfg, logger.NewLogger(cfg, "NetworkManager"))
	source := yahoo.NewYahooFinanceSource(cfg, netManager, reg, logger.NewLogger(cfg, "YahooFinanceSource"))
	agg := aggregator.NewSnapshotAggregator(cfg, reg, source, logger.NewLogger(cfg, "SnapshotAggregator"))
	synth := fallback.NewSynthesizer(reg, labelLocation(cfg), nil)

	return market.NewService(cfg, agg, source, synth, logger.NewLogger(cfg, "MarketService"))
}

// -----------------------------------------------------------------------------

func labelLocation(cfg *models.MConfig) *time.Location {
	if loc, err := time.LoadLocation(cfg.Market.LabelTimezone); err == nil {
		return loc
	}
	return time.UTC
}
