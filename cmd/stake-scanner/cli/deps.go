package cli

import (
	"context"
	"fmt"

	"github.com/stakescan/stake-scanner/internal/clients/chainclient"
	"github.com/stakescan/stake-scanner/internal/config"
	"github.com/stakescan/stake-scanner/internal/db"
	"github.com/stakescan/stake-scanner/internal/services"
)

func loadConfig() (*config.Config, error) {
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}
	return cfg, nil
}

func newDbClient(ctx context.Context, cfg *config.Config) (*db.Database, db.DbInterface, error) {
	database, err := db.New(ctx, cfg.Db)
	if err != nil {
		return nil, nil, fmt.Errorf("error while creating db client: %w", err)
	}
	return database, db.NewDbWithMetrics(database), nil
}

func newService(cfg *config.Config, dbClient db.DbInterface) *services.Service {
	selector := chainclient.NewNodeSelector(chainclient.DialEthClient, cfg.Chain.ProbeTimeout)
	return services.NewService(cfg, dbClient, selector)
}
