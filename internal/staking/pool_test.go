package staking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/asset"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genesisTime int64 = 1_700_000_000

var (
	assetAddr = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	poolAddr  = common.HexToAddress("0x5000000000000000000000000000000000000005")
	alice     = common.HexToAddress("0x1000000000000000000000000000000000000001")
	bob       = common.HexToAddress("0x2000000000000000000000000000000000000002")
)

type fakeClock struct {
	now atomic.Int64
}

func newFakeClock() *fakeClock {
	c := &fakeClock{}
	c.now.Store(genesisTime)
	return c
}

func (c *fakeClock) Now() time.Time {
	return time.Unix(c.now.Load(), 0)
}

func (c *fakeClock) advance(seconds int64) {
	c.now.Add(seconds)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) eventTypes() []types.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []types.EventType
	for _, ev := range s.events {
		res = append(res, ev.Type)
	}
	return res
}

type testEnv struct {
	pool  *Pool
	asset *asset.MemoryLedger
	clock *fakeClock
	sink  *recordingSink
}

// newTestEnv funds every account with 1000 units and approves the pool for all of it.
func newTestEnv(t *testing.T, accounts ...common.Address) *testEnv {
	t.Helper()
	ctx := t.Context()

	env := &testEnv{
		asset: asset.NewMemoryLedger(assetAddr),
		clock: newFakeClock(),
		sink:  &recordingSink{},
	}
	for _, account := range accounts {
		require.NoError(t, env.asset.Mint(ctx, account, sdkmath.NewInt(1000)))
		require.NoError(t, env.asset.Approve(ctx, account, poolAddr, sdkmath.NewInt(1000)))
	}

	pool, err := NewPool(
		Params{Address: poolAddr, Schedule: DefaultSchedule()},
		env.asset,
		WithClock(env.clock.Now),
		WithEventSink(env.sink),
	)
	require.NoError(t, err)
	env.pool = pool

	return env
}

func (e *testEnv) assetBalance(t *testing.T, account common.Address) string {
	t.Helper()
	balance, err := e.asset.BalanceOf(t.Context(), account)
	require.NoError(t, err)
	return balance.String()
}

func TestNewPool(t *testing.T) {
	params := Params{Address: poolAddr, Schedule: DefaultSchedule()}

	t.Run("ok", func(t *testing.T) {
		pool, err := NewPool(params, asset.NewMemoryLedger(assetAddr))
		require.NoError(t, err)
		assert.Equal(t, poolAddr, pool.Address())
		assert.Equal(t, assetAddr, pool.AssetAddress())
		assert.True(t, pool.TotalStaked().IsZero())
	})
	t.Run("null asset ledger address", func(t *testing.T) {
		_, err := NewPool(params, asset.NewMemoryLedger(common.Address{}))
		require.ErrorIs(t, err, ErrInvalidAddress)

		var addrErr *InvalidAddressError
		require.ErrorAs(t, err, &addrErr)
		assert.Equal(t, common.Address{}, addrErr.Address)
	})
	t.Run("null pool address", func(t *testing.T) {
		_, err := NewPool(Params{Schedule: DefaultSchedule()}, asset.NewMemoryLedger(assetAddr))
		require.ErrorIs(t, err, ErrInvalidAddress)
	})
	t.Run("missing schedule", func(t *testing.T) {
		_, err := NewPool(Params{Address: poolAddr}, asset.NewMemoryLedger(assetAddr))
		require.ErrorIs(t, err, ErrInvalidSchedule)
	})
}

func TestEarned(t *testing.T) {
	ctx := t.Context()

	t.Run("null account", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.pool.Earned(common.Address{})
		require.ErrorIs(t, err, ErrInvalidAccount)
	})
	t.Run("unknown account", func(t *testing.T) {
		env := newTestEnv(t)
		env.clock.advance(1000)

		earned, err := env.pool.Earned(alice)
		require.NoError(t, err)
		assert.True(t, earned.IsZero())
		assert.Zero(t, env.pool.LastStakeTime(alice))
		assert.True(t, env.pool.BalanceOf(alice).IsZero())
	})
	t.Run("accrues by tier", func(t *testing.T) {
		env := newTestEnv(t, alice)
		_, err := env.pool.Deposit(ctx, alice, sdkmath.NewInt(100))
		require.NoError(t, err)

		expected := map[int64]string{0: "0", 29: "0", 30: "20", 49: "20", 50: "30", 365: "50", 1000: "50"}
		for _, elapsed := range []int64{0, 29, 30, 49, 50, 365, 1000} {
			env.clock.now.Store(genesisTime + elapsed)
			earned, err := env.pool.Earned(alice)
			require.NoError(t, err)
			assert.Equal(t, expected[elapsed], earned.String(), "elapsed %d", elapsed)
		}
	})
	t.Run("clock behind checkpoint", func(t *testing.T) {
		env := newTestEnv(t, alice)
		_, err := env.pool.Deposit(ctx, alice, sdkmath.NewInt(100))
		require.NoError(t, err)

		env.clock.advance(-100)
		earned, err := env.pool.Earned(alice)
		require.NoError(t, err)
		assert.True(t, earned.IsZero())
	})
}

func TestAccount(t *testing.T) {
	env := newTestEnv(t, alice)

	acc, err := env.pool.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, types.StateUnstaked, acc.State())
	assert.Equal(t, alice, acc.Address)

	_, err = env.pool.Deposit(t.Context(), alice, sdkmath.NewInt(10))
	require.NoError(t, err)

	acc, err = env.pool.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, types.StateStaked, acc.State())
	assert.Equal(t, "10", acc.StakedBalance.String())
	assert.Equal(t, genesisTime, acc.LastCheckpoint)

	_, err = env.pool.Account(common.Address{})
	require.ErrorIs(t, err, ErrInvalidAccount)

	t.Run("with earned", func(t *testing.T) {
		env.clock.advance(31)

		acc, earned, err := env.pool.AccountWithEarned(alice)
		require.NoError(t, err)
		assert.Equal(t, "10", acc.StakedBalance.String())
		assert.Equal(t, genesisTime, acc.LastCheckpoint)
		assert.Equal(t, "2", earned.String())

		_, _, err = env.pool.AccountWithEarned(common.Address{})
		require.ErrorIs(t, err, ErrInvalidAccount)
	})
}

func TestStats(t *testing.T) {
	ctx := t.Context()
	env := newTestEnv(t, alice, bob)

	_, err := env.pool.Deposit(ctx, alice, sdkmath.NewInt(100))
	require.NoError(t, err)
	_, err = env.pool.Deposit(ctx, bob, sdkmath.NewInt(50))
	require.NoError(t, err)

	env.clock.advance(31)
	_, err = env.pool.ClaimReward(ctx, alice)
	require.NoError(t, err)

	stats, err := env.pool.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "130", stats.TotalStaked.String())
	assert.Equal(t, "150", stats.Principal.String())
	assert.Equal(t, "130", stats.AssetBalance.String())
	assert.Equal(t, "20", stats.SolvencyGap.String())
	assert.Equal(t, 2, stats.StakerCount)
	assert.Equal(t, genesisTime+31, stats.Timestamp)
}

func TestSinkFailureKeepsOperation(t *testing.T) {
	env := newTestEnv(t, alice)
	env.sink.err = errors.New("sink is down")

	_, err := env.pool.Deposit(t.Context(), alice, sdkmath.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, "100", env.pool.BalanceOf(alice).String())
	assert.Equal(t, []types.EventType{types.EventStaked}, env.sink.eventTypes())
}
