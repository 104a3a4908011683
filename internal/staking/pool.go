package staking

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/algorand/go-deadlock"
	"github.com/babylonlabs-io/staking-ledger/internal/asset"
	"github.com/ethereum/go-ethereum/common"
)

// Params are fixed for the lifetime of a pool.
type Params struct {
	// Address is the account the pool custodies the asset under.
	Address  common.Address
	Schedule *Schedule
}

// Pool is the staking ledger. Every operation runs under a single mutation
// lock covering reward computation, the solvency check, the external transfers
// and the ledger update, so two payouts can never both pass the guard against
// a balance that only covers one of them.
type Pool struct {
	mu deadlock.RWMutex

	params Params
	asset  asset.LedgerInterface
	ledger *ledger
	sink   EventSink
	now    func() time.Time
}

type Option func(*Pool)

// WithClock replaces the wall clock the pool reads checkpoints from.
func WithClock(now func() time.Time) Option {
	return func(p *Pool) {
		p.now = now
	}
}

// WithEventSink sets where committed operations are reported.
func WithEventSink(sink EventSink) Option {
	return func(p *Pool) {
		p.sink = sink
	}
}

func NewPool(params Params, assetLedger asset.LedgerInterface, opts ...Option) (*Pool, error) {
	if assetLedger == nil {
		return nil, &InvalidAddressError{}
	}
	if assetLedger.Address() == (common.Address{}) {
		return nil, &InvalidAddressError{Address: assetLedger.Address()}
	}
	if params.Address == (common.Address{}) {
		return nil, &InvalidAddressError{Address: params.Address}
	}
	if params.Schedule == nil {
		return nil, fmt.Errorf("%w: schedule is required", ErrInvalidSchedule)
	}

	p := &Pool{
		params: params,
		asset:  assetLedger,
		ledger: newLedger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

func (p *Pool) Address() common.Address {
	return p.params.Address
}

func (p *Pool) AssetAddress() common.Address {
	return p.asset.Address()
}

func (p *Pool) Schedule() *Schedule {
	return p.params.Schedule
}

// Earned is the reward the account would be paid if it harvested now.
func (p *Pool) Earned(account common.Address) (sdkmath.Int, error) {
	if err := p.validateAccount(account); err != nil {
		return sdkmath.Int{}, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.earnedAt(p.ledger.get(account), p.clock())
}

func (p *Pool) Account(account common.Address) (Account, error) {
	if err := p.validateAccount(account); err != nil {
		return Account{}, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.ledger.get(account), nil
}

// AccountWithEarned returns the account record and its earned reward read
// under the same lock, so both describe one ledger state.
func (p *Pool) AccountWithEarned(account common.Address) (Account, sdkmath.Int, error) {
	if err := p.validateAccount(account); err != nil {
		return Account{}, sdkmath.Int{}, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	acc := p.ledger.get(account)
	earned, err := p.earnedAt(acc, p.clock())
	if err != nil {
		return Account{}, sdkmath.Int{}, err
	}
	return acc, earned, nil
}

// BalanceOf returns the staked principal of an account.
func (p *Pool) BalanceOf(account common.Address) sdkmath.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.ledger.get(account).StakedBalance
}

// LastStakeTime returns the account's checkpoint in unix seconds, 0 if none.
func (p *Pool) LastStakeTime(account common.Address) int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.ledger.get(account).LastCheckpoint
}

func (p *Pool) TotalStaked() sdkmath.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.ledger.totalStaked
}

// Stats is a point in time view of the pool's books against its custody.
type Stats struct {
	TotalStaked sdkmath.Int
	// Principal is the sum of every account's staked balance.
	Principal    sdkmath.Int
	AssetBalance sdkmath.Int
	// SolvencyGap is Principal minus AssetBalance. A positive gap means the
	// pool cannot return every account's principal.
	SolvencyGap sdkmath.Int
	StakerCount int
	Timestamp   int64
}

func (p *Pool) Stats(ctx context.Context) (*Stats, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	balance, err := p.asset.BalanceOf(ctx, p.params.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool asset balance: %w", err)
	}

	principal, stakers := p.ledger.principal()
	return &Stats{
		TotalStaked:  p.ledger.totalStaked,
		Principal:    principal,
		AssetBalance: balance,
		SolvencyGap:  principal.Sub(balance),
		StakerCount:  stakers,
		Timestamp:    p.clock(),
	}, nil
}

func (p *Pool) clock() int64 {
	return p.now().Unix()
}

func (p *Pool) earnedAt(acc Account, now int64) (sdkmath.Int, error) {
	if acc.LastCheckpoint == 0 || now <= acc.LastCheckpoint {
		return sdkmath.ZeroInt(), nil
	}

	elapsed := time.Duration(now-acc.LastCheckpoint) * time.Second
	return p.params.Schedule.Reward(acc.StakedBalance, elapsed)
}

// validateAccount rejects the null address and the pool's own address. A pool
// staking with itself would move no value while growing totalStaked.
func (p *Pool) validateAccount(account common.Address) error {
	if err := validateAccount(account); err != nil {
		return err
	}
	if account == p.params.Address {
		return fmt.Errorf("%w: %s is the pool address", ErrInvalidAccount, account.Hex())
	}
	return nil
}
