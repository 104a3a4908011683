package staking

import (
	"context"
	"errors"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-ledger/pkg"
	"github.com/ethereum/go-ethereum/common"
)

const (
	payoutReward    = "reward"
	payoutPrincipal = "principal"
)

// PoolWithMetrics records latency, payouts and solvency guard trips of every
// state changing operation. Read accessors are forwarded as is.
type PoolWithMetrics struct {
	pool PoolInterface
}

func NewPoolWithMetrics(pool PoolInterface) *PoolWithMetrics {
	return &PoolWithMetrics{pool: pool}
}

func (p *PoolWithMetrics) Address() common.Address {
	return p.pool.Address()
}

func (p *PoolWithMetrics) AssetAddress() common.Address {
	return p.pool.AssetAddress()
}

func (p *PoolWithMetrics) Schedule() *Schedule {
	return p.pool.Schedule()
}

func (p *PoolWithMetrics) Earned(account common.Address) (sdkmath.Int, error) {
	return p.pool.Earned(account)
}

func (p *PoolWithMetrics) Account(account common.Address) (Account, error) {
	return p.pool.Account(account)
}

func (p *PoolWithMetrics) AccountWithEarned(account common.Address) (Account, sdkmath.Int, error) {
	return p.pool.AccountWithEarned(account)
}

func (p *PoolWithMetrics) BalanceOf(account common.Address) sdkmath.Int {
	return p.pool.BalanceOf(account)
}

func (p *PoolWithMetrics) LastStakeTime(account common.Address) int64 {
	return p.pool.LastStakeTime(account)
}

func (p *PoolWithMetrics) TotalStaked() sdkmath.Int {
	return p.pool.TotalStaked()
}

func (p *PoolWithMetrics) Stats(ctx context.Context) (*Stats, error) {
	return p.pool.Stats(ctx)
}

func (p *PoolWithMetrics) Deposit(ctx context.Context, account common.Address, amount sdkmath.Int) (reward sdkmath.Int, err error) {
	//nolint:errcheck
	p.run("Deposit", func() error {
		reward, err = p.pool.Deposit(ctx, account, amount)
		if err == nil {
			recordPayout("Deposit", payoutReward, reward)
		}
		return err
	})

	return
}

func (p *PoolWithMetrics) Withdraw(ctx context.Context, account common.Address, amount sdkmath.Int) error {
	return p.run("Withdraw", func() error {
		err := p.pool.Withdraw(ctx, account, amount)
		if err == nil {
			recordPayout("Withdraw", payoutPrincipal, amount)
		}
		return err
	})
}

func (p *PoolWithMetrics) Harvest(ctx context.Context, account common.Address) (reward sdkmath.Int, err error) {
	//nolint:errcheck
	p.run("Harvest", func() error {
		reward, err = p.pool.Harvest(ctx, account)
		if err == nil {
			recordPayout("Harvest", payoutReward, reward)
		}
		return err
	})

	return
}

func (p *PoolWithMetrics) ClaimReward(ctx context.Context, account common.Address) (reward sdkmath.Int, err error) {
	//nolint:errcheck
	p.run("ClaimReward", func() error {
		reward, err = p.pool.ClaimReward(ctx, account)
		if err == nil {
			recordPayout("ClaimReward", payoutReward, reward)
		}
		return err
	})

	return
}

func (p *PoolWithMetrics) UnStake(ctx context.Context, account common.Address) (reward, principal sdkmath.Int, err error) {
	//nolint:errcheck
	p.run("UnStake", func() error {
		reward, principal, err = p.pool.UnStake(ctx, account)
		if err == nil {
			recordPayout("UnStake", payoutReward, reward)
			recordPayout("UnStake", payoutPrincipal, principal)
		}
		return err
	})

	return
}

func (p *PoolWithMetrics) run(operation string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	if errors.Is(err, ErrInsufficientPoolBalance) {
		metrics.IncSolvencyGuardTrips()
	}
	metrics.RecordOperationLatency(duration, operation, err != nil)
	return err
}

func recordPayout(operation, kind string, units sdkmath.Int) {
	if units.IsNil() || !units.IsPositive() {
		return
	}

	metrics.RecordPayout(operation, kind, pkg.AmountToFloat64(units))
}
