package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/stakescan/stake-scanner/internal/db"
	"github.com/stakescan/stake-scanner/internal/observability/metrics"
	"github.com/stakescan/stake-scanner/internal/types"
	"github.com/stakescan/stake-scanner/internal/utils/poller"
)

// StartScanPoller periodically rescans the last stored address list
func (s *Service) StartScanPoller(ctx context.Context) {
	scanPoller := poller.NewPoller(
		s.cfg.Poller.ScanPollingInterval,
		metrics.RecordPollerDuration("scan", s.rescanStoredAddresses),
	)
	go scanPoller.Start(ctx)
}

func (s *Service) rescanStoredAddresses(ctx context.Context) error {
	log := log.Ctx(ctx)

	addresses, err := db.LoadAddressList(ctx, s.db)
	if err != nil {
		if db.IsNotFoundError(err) {
			log.Debug().Msg("No address list stored - skipping scan")
			return nil
		}
		return fmt.Errorf("failed to load address list: %w", err)
	}

	if len(addresses) == 0 {
		log.Debug().Msg("Stored address list is empty - skipping scan")
		return nil
	}

	if _, err := s.RunScan(ctx, ScanRequest{Addresses: addresses, Mode: types.ScanModeFull}); err != nil {
		return fmt.Errorf("failed to rescan stored addresses: %w", err)
	}

	return nil
}
