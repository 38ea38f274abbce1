package chainclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"
)

var errNoEndpoints = errors.New("no endpoints configured")

// ConnectionError is returned when none of the endpoints passed the
// health probe. It aborts the scan.
type ConnectionError struct {
	Tried int
	Err   error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to any of %d chain endpoints: %v", e.Tried, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Connection is a probed node connection.
type Connection struct {
	Caller
	Endpoint string
}

// Dialer opens a connection to a single endpoint
type Dialer func(ctx context.Context, endpoint string) (Caller, error)

// DialEthClient dials a JSON-RPC endpoint with go-ethereum's client.
func DialEthClient(ctx context.Context, endpoint string) (Caller, error) {
	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NodeSelector picks the first healthy endpoint of an ordered list.
type NodeSelector struct {
	dial         Dialer
	probeTimeout time.Duration
}

func NewNodeSelector(dial Dialer, probeTimeout time.Duration) *NodeSelector {
	return &NodeSelector{
		dial:         dial,
		probeTimeout: probeTimeout,
	}
}

// Connect tries every endpoint once, in order, and returns the first one
// that answers a block number request within the probe timeout. It makes
// a single pass over the list and does not retry.
func (s *NodeSelector) Connect(ctx context.Context, endpoints []string) (*Connection, error) {
	log := log.Ctx(ctx)

	lastErr := errNoEndpoints
	for i, endpoint := range endpoints {
		if err := ctx.Err(); err != nil {
			return nil, &ConnectionError{Tried: i, Err: err}
		}

		res, err := s.probe(ctx, endpoint)
		if err != nil {
			log.Warn().
				Err(err).
				Str("endpoint", endpoint).
				Msg("chain endpoint failed health probe")
			lastErr = err
			continue
		}

		log.Info().
			Str("endpoint", endpoint).
			Uint64("height", res.height).
			Msg("connected to chain endpoint")

		return &Connection{Caller: res.caller, Endpoint: endpoint}, nil
	}

	return nil, &ConnectionError{Tried: len(endpoints), Err: lastErr}
}

type probeResult struct {
	caller Caller
	height uint64
}

func (s *NodeSelector) probe(ctx context.Context, endpoint string) (*probeResult, error) {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	caller, err := s.dial(probeCtx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", endpoint, err)
	}

	height, err := caller.BlockNumber(probeCtx)
	if err != nil {
		caller.Close()
		return nil, fmt.Errorf("failed to get block number from %s: %w", endpoint, err)
	}

	return &probeResult{caller: caller, height: height}, nil
}
