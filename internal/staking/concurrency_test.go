package staking

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	concpool "github.com/sourcegraph/conc/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentOperations(t *testing.T) {
	ctx := t.Context()

	accounts := make([]common.Address, 50)
	for i := range accounts {
		accounts[i] = common.HexToAddress(fmt.Sprintf("0x%040x", i+1))
	}
	env := newTestEnv(t, accounts...)

	p := concpool.New().WithErrors().WithMaxGoroutines(8)
	for _, account := range accounts {
		p.Go(func() error {
			for range 10 {
				if _, err := env.pool.Deposit(ctx, account, sdkmath.NewInt(10)); err != nil {
					return err
				}
			}
			if err := env.pool.Withdraw(ctx, account, sdkmath.NewInt(40)); err != nil {
				return err
			}
			_, _, err := env.pool.UnStake(ctx, account)
			return err
		})
	}
	require.NoError(t, p.Wait())

	assert.True(t, env.pool.TotalStaked().IsZero())
	assert.Equal(t, "0", env.assetBalance(t, poolAddr))
	for _, account := range accounts {
		assert.Equal(t, "1000", env.assetBalance(t, account))
	}
	assert.Len(t, env.sink.eventTypes(), len(accounts)*12)
}

func TestConcurrentPayoutsShareGuard(t *testing.T) {
	ctx := t.Context()
	env := newTestEnv(t, alice, bob)

	_, err := env.pool.Deposit(ctx, alice, sdkmath.NewInt(100))
	require.NoError(t, err)
	_, err = env.pool.Deposit(ctx, bob, sdkmath.NewInt(100))
	require.NoError(t, err)
	// custody now covers only one of the two exits
	require.NoError(t, env.asset.Transfer(ctx, poolAddr, common.HexToAddress("0xdead"), sdkmath.NewInt(60)))

	var succeeded, starved atomic.Int32
	p := concpool.New().WithErrors()
	for _, account := range []common.Address{alice, bob} {
		p.Go(func() error {
			_, _, err := env.pool.UnStake(ctx, account)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, ErrInsufficientPoolBalance):
				starved.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, p.Wait())

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(1), starved.Load())
	assert.Equal(t, "40", env.assetBalance(t, poolAddr))
	assert.Equal(t, "100", env.pool.TotalStaked().String())
}
