package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakescan/stake-scanner/internal/clients/chainclient"
	"github.com/stakescan/stake-scanner/internal/config"
	"github.com/stakescan/stake-scanner/internal/db"
	"github.com/stakescan/stake-scanner/internal/observability/metrics"
	"github.com/stakescan/stake-scanner/internal/observability/tracing"
	"github.com/stakescan/stake-scanner/internal/types"
)

// ScanRequest is one invocation of the scanner. Mode is stored with the
// result and does not change how the scan runs.
type ScanRequest struct {
	Addresses []string
	Mode      types.ScanMode
}

// StakingClientFactory binds a staking client to a probed connection
type StakingClientFactory func(conn *chainclient.Connection) chainclient.StakingInterface

type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	selector  *chainclient.NodeSelector
	newClient StakingClientFactory
	now       func() time.Time
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	selector *chainclient.NodeSelector,
) *Service {
	return &Service{
		cfg:      cfg,
		db:       db,
		selector: selector,
		newClient: func(conn *chainclient.Connection) chainclient.StakingInterface {
			return chainclient.NewStakingClientWithMetrics(
				chainclient.NewContractClient(conn, &cfg.Chain),
			)
		},
		now: time.Now,
	}
}

// RunScan connects to the first healthy endpoint, scans every address and
// stores the aggregated snapshot. Only a failure to connect aborts the
// scan; failed addresses and records are reported in the result, and a
// failure to store the result is logged but does not affect it.
func (s *Service) RunScan(ctx context.Context, req ScanRequest) (*types.ScanResult, error) {
	ctx, scanID := tracing.InjectScanID(ctx)
	log := log.Ctx(ctx)

	if len(req.Addresses) > s.cfg.Scanner.MaxAddresses {
		return nil, fmt.Errorf(
			"too many addresses: %d (max %d)", len(req.Addresses), s.cfg.Scanner.MaxAddresses,
		)
	}
	mode := types.ScanModeOrDefault(req.Mode.String())

	startTime := time.Now()
	now := s.now().Unix()

	log.Info().
		Int("addresses", len(req.Addresses)).
		Stringer("mode", mode).
		Msg("starting scan")

	conn, err := s.selector.Connect(ctx, s.cfg.Chain.Endpoints)
	if err != nil {
		metrics.RecordScanDuration(time.Since(startTime), true)
		return nil, fmt.Errorf("failed to connect to chain: %w", err)
	}
	defer conn.Close()

	client := s.newClient(conn)
	lpBalance := client.GetPoolBalance(ctx)

	scanCtx := ctx
	if s.cfg.Scanner.ScanTimeout > 0 {
		var cancel context.CancelFunc
		scanCtx, cancel = context.WithTimeout(ctx, s.cfg.Scanner.ScanTimeout)
		defer cancel()
	}

	aggregator := NewAggregator(now)
	scanner := NewBatchScanner(client, &s.cfg.Scanner)
	scanned, scanErr := scanner.Scan(scanCtx, req.Addresses, now, aggregator.Add)

	partial := scanErr != nil
	if partial {
		unscanned := req.Addresses[scanned:]
		log.Warn().
			Err(scanErr).
			Int("scanned", scanned).
			Int("unscanned", len(unscanned)).
			Msg("scan stopped early, returning partial result")
		for _, address := range unscanned {
			aggregator.Add(types.AddressResult{Address: address, Error: "not scanned"})
		}
	}

	result := aggregator.Result(len(req.Addresses))
	result.Partial = partial
	result.ScanID = scanID
	result.Mode = mode
	result.Endpoint = conn.Endpoint
	result.LPBalance = lpBalance
	result.LastUpdate = time.Now().UnixMilli()

	log.Info().
		Int("total", result.TotalAddresses).
		Int("success", result.SuccessCount).
		Int("failed", len(result.FailedAddresses)).
		Int("active_records", len(result.ActiveRecords)).
		Int("all_records", len(result.AllRecords)).
		Str("total_staked", result.Stats.TotalStaked.String()).
		Bool("partial", result.Partial).
		Dur("duration", time.Since(startTime)).
		Msg("scan completed")

	s.persist(ctx, result, req.Addresses)

	metrics.RecordScanResult(
		len(result.FailedAddresses), len(result.ActiveRecords), result.Stats.TotalStaked.InexactFloat64(),
	)
	metrics.RecordScanDuration(time.Since(startTime), partial)

	return result, nil
}

func (s *Service) persist(ctx context.Context, result *types.ScanResult, addresses []string) {
	log := log.Ctx(ctx)

	if err := db.SaveScanResult(ctx, s.db, result); err != nil {
		log.Error().Err(err).Msg("failed to persist scan result")
	}
	if err := db.SaveAddressList(ctx, s.db, addresses); err != nil {
		log.Error().Err(err).Msg("failed to persist address list")
	}
}
