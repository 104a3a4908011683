package staking

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInvalidAccount           = errors.New("invalid account")
	ErrInvalidAddress           = errors.New("invalid address")
	ErrZeroAmount               = errors.New("amount = 0")
	ErrNegativeAmount           = errors.New("amount < 0")
	ErrAmountTooLarge           = errors.New("amount exceeds the supported range")
	ErrInsufficientStakedAmount = errors.New("insufficient staked amount")
	ErrRewardIsZero             = errors.New("reward is zero")
	ErrInsufficientPoolBalance  = errors.New("insufficient pool balance")
	// ErrTotalStakedUnderflow is returned when an operation would take the pool
	// total below zero. claimReward drains the total without touching principal,
	// so the total can fall behind the sum of balances still owed.
	ErrTotalStakedUnderflow = errors.New("total staked underflow")
	ErrInvalidSchedule      = errors.New("invalid reward schedule")
)

// InvalidAddressError is returned at construction when a required address is null.
type InvalidAddressError struct {
	Address common.Address
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidAddress, e.Address.Hex())
}

func (e *InvalidAddressError) Unwrap() error {
	return ErrInvalidAddress
}

func validateAccount(account common.Address) error {
	if account == (common.Address{}) {
		return fmt.Errorf("%w: %s", ErrInvalidAccount, account.Hex())
	}
	return nil
}
