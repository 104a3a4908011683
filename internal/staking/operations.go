package staking

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/asset"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
)

// Deposit pulls amount from the account into the pool and restarts its reward
// clock. Reward accrued on the previous balance is paid out in the same
// operation and returned.
func (p *Pool) Deposit(ctx context.Context, account common.Address, amount sdkmath.Int) (sdkmath.Int, error) {
	if err := p.validateAccount(account); err != nil {
		return sdkmath.Int{}, err
	}
	if err := validateAmount(amount); err != nil {
		return sdkmath.Int{}, err
	}

	log.Ctx(ctx).Debug().
		Str("account", account.Hex()).
		Stringer("amount", amount).
		Msg("deposit requested")

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock()
	acc := p.ledger.get(account)
	reward, err := p.earnedAt(acc, now)
	if err != nil {
		return sdkmath.Int{}, err
	}

	if err := p.checkCapacity(acc.StakedBalance, amount); err != nil {
		return sdkmath.Int{}, err
	}

	// the reward is covered by what the pool held before this deposit
	if reward.IsPositive() {
		if err := p.ensureSolvent(ctx, reward); err != nil {
			return sdkmath.Int{}, err
		}
	}

	if err := p.asset.TransferFrom(ctx, p.params.Address, account, p.params.Address, amount); err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("account", account.Hex()).
			Stringer("amount", amount).
			Msg("failed to pull deposit from account")
		return sdkmath.Int{}, err
	}

	if reward.IsPositive() {
		if err := p.asset.Transfer(ctx, p.params.Address, account, reward); err != nil {
			if refundErr := p.refundDeposit(ctx, account, amount); refundErr != nil {
				log.Ctx(ctx).Error().Err(refundErr).
					Str("account", account.Hex()).
					Stringer("amount", amount).
					Msg("failed to refund deposit after reward payout failure")
			}
			return sdkmath.Int{}, err
		}
	}

	p.ledger.deposit(account, amount, now)

	acc = p.ledger.get(account)
	events := make([]Event, 0, 2)
	if reward.IsPositive() {
		events = append(events, newRewardPaidEvent(acc, p.ledger.totalStaked, reward, now))
	}
	events = append(events, newStakedEvent(acc, p.ledger.totalStaked, amount, reward, now))
	p.emit(ctx, events...)

	log.Ctx(ctx).Info().
		Str("account", account.Hex()).
		Stringer("amount", amount).
		Stringer("reward", reward).
		Msg("staked")

	return reward, nil
}

// Withdraw returns part of the principal. The reward clock keeps running on
// what is left.
func (p *Pool) Withdraw(ctx context.Context, account common.Address, amount sdkmath.Int) error {
	if err := p.validateAccount(account); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	log.Ctx(ctx).Debug().
		Str("account", account.Hex()).
		Stringer("amount", amount).
		Msg("withdraw requested")

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock()
	acc := p.ledger.get(account)
	if amount.GT(acc.StakedBalance) {
		return fmt.Errorf("%w: staked %s, requested %s",
			ErrInsufficientStakedAmount, acc.StakedBalance, amount)
	}
	if err := p.ensureSolvent(ctx, amount); err != nil {
		return err
	}
	if !p.ledger.canDrain(amount) {
		return fmt.Errorf("%w: total staked %s, requested %s",
			ErrTotalStakedUnderflow, p.ledger.totalStaked, amount)
	}
	if err := p.asset.Transfer(ctx, p.params.Address, account, amount); err != nil {
		return err
	}

	p.ledger.withdraw(account, amount)
	p.emit(ctx, newWithdrawEvent(p.ledger.get(account), p.ledger.totalStaked, amount, now))

	log.Ctx(ctx).Info().
		Str("account", account.Hex()).
		Stringer("amount", amount).
		Msg("withdrawn")

	return nil
}

// Harvest pays the accrued reward and restarts the reward clock. The principal
// and the pool total are left as they are.
func (p *Pool) Harvest(ctx context.Context, account common.Address) (sdkmath.Int, error) {
	return p.payReward(ctx, account, false)
}

// ClaimReward pays the accrued reward like Harvest and also takes it out of the
// pool total. No account's principal is reduced, so repeated claims leave the
// total below the sum of staked balances and can starve later payouts.
func (p *Pool) ClaimReward(ctx context.Context, account common.Address) (sdkmath.Int, error) {
	return p.payReward(ctx, account, true)
}

func (p *Pool) payReward(ctx context.Context, account common.Address, drainTotal bool) (sdkmath.Int, error) {
	if err := p.validateAccount(account); err != nil {
		return sdkmath.Int{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock()
	reward, err := p.earnedAt(p.ledger.get(account), now)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if reward.IsZero() {
		return sdkmath.Int{}, ErrRewardIsZero
	}
	if err := p.ensureSolvent(ctx, reward); err != nil {
		return sdkmath.Int{}, err
	}
	if drainTotal && !p.ledger.canDrain(reward) {
		return sdkmath.Int{}, fmt.Errorf("%w: total staked %s, reward %s",
			ErrTotalStakedUnderflow, p.ledger.totalStaked, reward)
	}
	if err := p.asset.Transfer(ctx, p.params.Address, account, reward); err != nil {
		return sdkmath.Int{}, err
	}

	p.ledger.checkpoint(account, now)
	if drainTotal {
		p.ledger.drain(reward)
	}
	p.emit(ctx, newRewardPaidEvent(p.ledger.get(account), p.ledger.totalStaked, reward, now))

	log.Ctx(ctx).Info().
		Str("account", account.Hex()).
		Stringer("reward", reward).
		Bool("drain_total", drainTotal).
		Msg("reward paid")

	return reward, nil
}

// UnStake pays the accrued reward and the whole principal in one transfer and
// zeroes the account.
func (p *Pool) UnStake(ctx context.Context, account common.Address) (reward, principal sdkmath.Int, err error) {
	if err := p.validateAccount(account); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock()
	acc := p.ledger.get(account)
	principal = acc.StakedBalance
	if !principal.IsPositive() {
		return sdkmath.Int{}, sdkmath.Int{}, fmt.Errorf("%w: nothing staked", ErrZeroAmount)
	}
	reward, err = p.earnedAt(acc, now)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if err := p.ensureSolvent(ctx, reward, principal); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if !p.ledger.canDrain(principal) {
		return sdkmath.Int{}, sdkmath.Int{}, fmt.Errorf("%w: total staked %s, principal %s",
			ErrTotalStakedUnderflow, p.ledger.totalStaked, principal)
	}
	if err := p.asset.Transfer(ctx, p.params.Address, account, reward.Add(principal)); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	p.ledger.exit(account)
	p.emit(ctx, newUnStakedEvent(p.ledger.get(account), p.ledger.totalStaked, reward, principal, now))

	log.Ctx(ctx).Info().
		Str("account", account.Hex()).
		Stringer("reward", reward).
		Stringer("principal", principal).
		Msg("unstaked")

	return reward, principal, nil
}

// refundDeposit undoes a pulled deposit: the units go back to the account and
// the allowance spent by TransferFrom is restored. Ledgers that do not
// implement asset.Approver leave the allowance spent.
// Must be called with the pool lock held.
func (p *Pool) refundDeposit(ctx context.Context, account common.Address, amount sdkmath.Int) error {
	if err := p.asset.Transfer(ctx, p.params.Address, account, amount); err != nil {
		return fmt.Errorf("failed to return deposit: %w", err)
	}

	approver, ok := p.asset.(asset.Approver)
	if !ok {
		log.Ctx(ctx).Warn().
			Str("account", account.Hex()).
			Stringer("amount", amount).
			Msg("asset ledger cannot restore allowances, spent allowance not returned")
		return nil
	}

	allowance, err := p.asset.Allowance(ctx, account, p.params.Address)
	if err != nil {
		return fmt.Errorf("failed to read allowance: %w", err)
	}
	if err := approver.Approve(ctx, account, p.params.Address, allowance.Add(amount)); err != nil {
		return fmt.Errorf("failed to restore allowance: %w", err)
	}
	return nil
}

func validateAmount(amount sdkmath.Int) error {
	if amount.IsNil() || amount.IsZero() {
		return ErrZeroAmount
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	return nil
}

// checkCapacity rejects deposits whose balance could no longer be rewarded
// at the top rate without overflowing.
func (p *Pool) checkCapacity(staked, amount sdkmath.Int) error {
	newBalance, err := staked.SafeAdd(amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAmountTooLarge, err)
	}
	if _, err := newBalance.SafeMul(sdkmath.NewIntFromUint64(p.params.Schedule.maxRate())); err != nil {
		return fmt.Errorf("%w: %w", ErrAmountTooLarge, err)
	}
	if _, err := p.ledger.totalStaked.SafeAdd(amount); err != nil {
		return fmt.Errorf("%w: %w", ErrAmountTooLarge, err)
	}
	return nil
}
