//go:build integration

package services

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
	"github.com/babylonlabs-io/staking-ledger/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEventPipeline(t *testing.T) {
	t.Cleanup(func() {
		resetDatabase(t)
	})
	metrics.Register()
	ctx := t.Context()

	events := NewEventQueue(10)
	pool := newTestPool(t, events)

	_, err := pool.Deposit(ctx, staker, sdkmath.NewInt(100))
	require.NoError(t, err)
	require.NoError(t, pool.Withdraw(ctx, staker, sdkmath.NewInt(25)))
	_, _, err = pool.UnStake(ctx, staker)
	require.NoError(t, err)

	eventConsumer := mocks.NewEventConsumer(t)
	eventConsumer.On("PushStakingEvent", mock.Anything, mock.Anything).Return(nil).Times(3)

	srv := NewService(testConfig(), testDB, pool, eventConsumer, events)

	processorCtx, cancel := context.WithCancel(ctx)
	cancel()
	srv.StartEventProcessor(processorCtx)

	history, err := testDB.GetStakingEventsByAccount(ctx, staker, 10)
	require.NoError(t, err)
	require.Len(t, history, 3)
	var gotTypes []string
	for _, ev := range history {
		gotTypes = append(gotTypes, ev.Type)
	}
	assert.ElementsMatch(t, []string{
		types.EventStaked.String(),
		types.EventWithdraw.String(),
		types.EventUnStaked.String(),
	}, gotTypes)

	account, err := testDB.GetStakingAccount(ctx, staker)
	require.NoError(t, err)
	state, err := types.AccountStateFromString(account.State)
	require.NoError(t, err)
	assert.Equal(t, types.StateUnstaked, state)
	assert.Equal(t, "0", account.StakedBalance)

	t.Run("stats snapshot", func(t *testing.T) {
		require.NoError(t, srv.calculateAndUpdateStats(ctx))

		stats, err := testDB.GetPoolStats(ctx, poolAddr)
		require.NoError(t, err)
		assert.Equal(t, "0", stats.TotalStaked)
		assert.Equal(t, "0", stats.AssetBalance)
		assert.Equal(t, 0, stats.StakerCount)
	})
}
