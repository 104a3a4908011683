package staking

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

type PoolInterface interface {
	Address() common.Address
	AssetAddress() common.Address
	Schedule() *Schedule
	Earned(account common.Address) (sdkmath.Int, error)
	Account(account common.Address) (Account, error)
	AccountWithEarned(account common.Address) (Account, sdkmath.Int, error)
	BalanceOf(account common.Address) sdkmath.Int
	LastStakeTime(account common.Address) int64
	TotalStaked() sdkmath.Int
	Stats(ctx context.Context) (*Stats, error)

	Deposit(ctx context.Context, account common.Address, amount sdkmath.Int) (sdkmath.Int, error)
	Withdraw(ctx context.Context, account common.Address, amount sdkmath.Int) error
	Harvest(ctx context.Context, account common.Address) (sdkmath.Int, error)
	ClaimReward(ctx context.Context, account common.Address) (sdkmath.Int, error)
	UnStake(ctx context.Context, account common.Address) (reward, principal sdkmath.Int, err error)
}
