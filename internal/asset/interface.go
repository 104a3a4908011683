package asset

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// LedgerInterface is the fungible asset ledger the staking pool settles against.
// Every method is a call into the system of record for custody, so failures are
// returned to the caller untouched.
type LedgerInterface interface {
	Address() common.Address
	BalanceOf(ctx context.Context, account common.Address) (sdkmath.Int, error)
	Allowance(ctx context.Context, owner, spender common.Address) (sdkmath.Int, error)
	Transfer(ctx context.Context, from, to common.Address, amount sdkmath.Int) error
	TransferFrom(ctx context.Context, spender, from, to common.Address, amount sdkmath.Int) error
}

// Approver is implemented by ledgers that let the service set allowances on
// behalf of an owner (the in-memory development ledger does).
type Approver interface {
	Approve(ctx context.Context, owner, spender common.Address, amount sdkmath.Int) error
}
