package chainclient

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/stakescan/stake-scanner/internal/config"
	"github.com/stakescan/stake-scanner/internal/utils/retry"
)

// ContractClient reads the staking contract (and the pool token balance)
// through a probed connection. Every read is retried per the chain config.
type ContractClient struct {
	conn    *Connection
	staking common.Address
	token   common.Address
	lpPool  common.Address
	hasPool bool
	policy  retry.Policy
	limiter *rate.Limiter
}

func NewContractClient(conn *Connection, cfg *config.ChainConfig) *ContractClient {
	c := &ContractClient{
		conn:    conn,
		staking: common.HexToAddress(cfg.StakingContract),
		hasPool: cfg.HasLPPool(),
		policy: retry.Policy{
			MaxAttempts: cfg.MaxRetryTimes,
			BaseDelay:   cfg.RetryInterval,
		},
	}
	if c.hasPool {
		c.token = common.HexToAddress(cfg.TokenContract)
		c.lpPool = common.HexToAddress(cfg.LPPoolAddress)
	}
	if cfg.RequestsPerSecond > 0 {
		burst := max(int(cfg.RequestsPerSecond), 1)
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return c
}

func (c *ContractClient) GetStakeCount(ctx context.Context, address string) (uint64, error) {
	user, err := parseAddress(address)
	if err != nil {
		return 0, err
	}

	out, err := c.callWithRetry(ctx, c.staking, stakingABI, methodStakeCount, user)
	if err != nil {
		return 0, fmt.Errorf("failed to get stake count of %s: %w", address, err)
	}

	count, ok := out[0].(*big.Int)
	if !ok || !count.IsUint64() {
		return 0, fmt.Errorf("unexpected stake count %v for %s", out[0], address)
	}

	return count.Uint64(), nil
}

func (c *ContractClient) GetStakeRecord(ctx context.Context, address string, index uint64) (*RawStakeRecord, error) {
	user, err := parseAddress(address)
	if err != nil {
		return nil, err
	}

	out, err := c.callWithRetry(ctx, c.staking, stakingABI, methodUserStakeRecord, user, new(big.Int).SetUint64(index))
	if err != nil {
		return nil, fmt.Errorf("failed to get stake record %d of %s: %w", index, address, err)
	}

	record, err := unpackStakeRecord(out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stake record %d of %s: %w", index, address, err)
	}

	return record, nil
}

func (c *ContractClient) GetPoolBalance(ctx context.Context) decimal.Decimal {
	if !c.hasPool {
		return decimal.Zero
	}

	out, err := c.callWithRetry(ctx, c.token, erc20ABI, methodBalanceOf, c.lpPool)
	if err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("pool", c.lpPool.Hex()).
			Msg("failed to get lp pool balance")
		return decimal.Zero
	}

	balance, ok := out[0].(*big.Int)
	if !ok {
		log.Ctx(ctx).Error().
			Str("pool", c.lpPool.Hex()).
			Msgf("unexpected lp pool balance type %T", out[0])
		return decimal.Zero
	}

	return ToAmount(balance)
}

// callWithRetry packs the call once and retries the eth_call together with
// decoding of its result.
func (c *ContractClient) callWithRetry(
	ctx context.Context, to common.Address, contractABI abi.ABI, method string, args ...any,
) ([]any, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	return retry.Do(ctx, method, c.policy, func(ctx context.Context) ([]any, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		raw, err := c.conn.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
		if err != nil {
			return nil, err
		}

		out, err := contractABI.Unpack(method, raw)
		if err != nil {
			return nil, err
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("empty %s result", method)
		}
		return out, nil
	})
}

func unpackStakeRecord(out []any) (*RawStakeRecord, error) {
	if len(out) != 4 {
		return nil, fmt.Errorf("expected 4 values, got %d", len(out))
	}

	stakeTime, ok := out[0].(*big.Int)
	if !ok || !stakeTime.IsUint64() {
		return nil, fmt.Errorf("unexpected stake time %v", out[0])
	}
	amount, ok := out[1].(*big.Int)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("unexpected amount %v", out[1])
	}
	isRedeemed, ok := out[2].(bool)
	if !ok {
		return nil, fmt.Errorf("unexpected redeemed flag %v", out[2])
	}
	stakeIndex, ok := out[3].(uint8)
	if !ok {
		return nil, fmt.Errorf("unexpected stake index %v", out[3])
	}

	return &RawStakeRecord{
		StakeTime:  stakeTime.Uint64(),
		Amount:     amount,
		IsRedeemed: isRedeemed,
		StakeIndex: stakeIndex,
	}, nil
}

func parseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("invalid address %q", address)
	}
	return common.HexToAddress(address), nil
}
