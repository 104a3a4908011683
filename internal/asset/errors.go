package asset

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInvalidSender         = errors.New("invalid sender")
	ErrInvalidReceiver       = errors.New("invalid receiver")
	ErrInvalidApprover       = errors.New("invalid approver")
	ErrInvalidSpender        = errors.New("invalid spender")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrApproveUnsupported    = errors.New("asset ledger does not support approvals")
)

// InsufficientBalanceError is returned when the sender does not hold enough
// units to cover a transfer.
type InsufficientBalanceError struct {
	Sender  common.Address
	Balance sdkmath.Int
	Needed  sdkmath.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: sender %s has %s, needs %s",
		e.Sender.Hex(), e.Balance, e.Needed)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// InsufficientAllowanceError is returned when the spender was not approved
// for enough units by the owner.
type InsufficientAllowanceError struct {
	Spender   common.Address
	Allowance sdkmath.Int
	Needed    sdkmath.Int
}

func (e *InsufficientAllowanceError) Error() string {
	return fmt.Sprintf("insufficient allowance: spender %s is allowed %s, needs %s",
		e.Spender.Hex(), e.Allowance, e.Needed)
}

func (e *InsufficientAllowanceError) Unwrap() error {
	return ErrInsufficientAllowance
}

// AddressError reports a zero address passed where a real party is required.
// Kind is one of the Err* address sentinels above.
type AddressError struct {
	Kind    error
	Address common.Address
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Address.Hex())
}

func (e *AddressError) Unwrap() error {
	return e.Kind
}

func IsInsufficientBalanceError(err error) bool {
	var balanceErr *InsufficientBalanceError
	return errors.As(err, &balanceErr)
}

func IsInsufficientAllowanceError(err error) bool {
	var allowanceErr *InsufficientAllowanceError
	return errors.As(err, &allowanceErr)
}
