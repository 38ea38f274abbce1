package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakescan/stake-scanner/internal/observability/metrics"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the periodic rescan of the stored address list",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := log.Ctx(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, dbClient, err := newDbClient(ctx, cfg)
	if err != nil {
		return err
	}

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service := newService(cfg, dbClient)
	service.StartScanPoller(ctx)

	log.Info().
		Dur("interval", cfg.Poller.ScanPollingInterval).
		Int("metrics_port", metricsPort).
		Msg("Scan poller started")

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	// ctx is already cancelled here
	return database.Disconnect(context.WithoutCancel(ctx))
}
