package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"market-pulse/src/logger"
	"market-pulse/src/scheduler"
	"market-pulse/src/server"
	"market-pulse/src/utils"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the snapshot stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setupApp(configPath)
		if err != nil {
			return err
		}
		return serve(a)
	},
}

// -----------------------------------------------------------------------------

func serve(a *app) error {
	cfg := a.Config.MConfig

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewAPIServer(cfg, a.Service, a.Registry, logger.NewLogger(cfg, "HTTPServer"))

	var refresher *scheduler.Refresher
	if cfg.Refresh.Enabled {
		hours := utils.NewMarketScheduler(a.Registry.ProviderIDs(), logger.NewLogger(cfg, "MarketScheduler"))
		refresher = scheduler.NewRefresher(ctx, a.Service, srv, hours, logger.NewLogger(cfg, "Refresher"))
		if err := refresher.Register(cfg.Refresh.Cron); err != nil {
			return err
		}
		refresher.Start()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if refresher != nil {
			refresher.Stop()
		}
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("Shutting down...")
	if refresher != nil {
		refresher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		a.Logger.Error("Server shutdown: %v", err)
	}
	return <-errCh
}
