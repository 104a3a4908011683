package staking

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/asset"
	"github.com/rs/zerolog/log"
)

// ensureSolvent checks the pool's custody covers the payouts about to be sent,
// taken in order. The error carries the same shape the asset ledger reports for
// an insufficient balance, naming the first payout that cannot be covered.
// Must be called with the pool lock held.
func (p *Pool) ensureSolvent(ctx context.Context, payouts ...sdkmath.Int) error {
	balance, err := p.asset.BalanceOf(ctx, p.params.Address)
	if err != nil {
		return fmt.Errorf("failed to get pool asset balance: %w", err)
	}

	remaining := balance
	for _, payout := range payouts {
		if payout.IsZero() {
			continue
		}
		if remaining.LT(payout) {
			log.Ctx(ctx).Warn().
				Str("pool", p.params.Address.Hex()).
				Stringer("balance", remaining).
				Stringer("needed", payout).
				Msg("pool balance cannot cover payout")

			return fmt.Errorf("%w: %w", ErrInsufficientPoolBalance, &asset.InsufficientBalanceError{
				Sender:  p.params.Address,
				Balance: remaining,
				Needed:  payout,
			})
		}
		remaining = remaining.Sub(payout)
	}

	return nil
}
