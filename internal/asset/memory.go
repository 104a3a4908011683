package asset

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/algorand/go-deadlock"
	"github.com/ethereum/go-ethereum/common"
)

// MemoryLedger is an in-process ledger with ERC20 transfer semantics. It backs
// local deployments and tests; absent entries read as zero.
type MemoryLedger struct {
	mu         deadlock.RWMutex
	address    common.Address
	balances   map[common.Address]sdkmath.Int
	allowances map[common.Address]map[common.Address]sdkmath.Int
}

func NewMemoryLedger(address common.Address) *MemoryLedger {
	return &MemoryLedger{
		address:    address,
		balances:   make(map[common.Address]sdkmath.Int),
		allowances: make(map[common.Address]map[common.Address]sdkmath.Int),
	}
}

func (l *MemoryLedger) Address() common.Address {
	return l.address
}

// Mint credits new units to an account. Only used to seed genesis balances.
func (l *MemoryLedger) Mint(_ context.Context, to common.Address, amount sdkmath.Int) error {
	if to == (common.Address{}) {
		return &AddressError{Kind: ErrInvalidReceiver, Address: to}
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[to] = l.balanceOf(to).Add(amount)
	return nil
}

func (l *MemoryLedger) BalanceOf(_ context.Context, account common.Address) (sdkmath.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balanceOf(account), nil
}

func (l *MemoryLedger) Allowance(_ context.Context, owner, spender common.Address) (sdkmath.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.allowance(owner, spender), nil
}

func (l *MemoryLedger) Approve(_ context.Context, owner, spender common.Address, amount sdkmath.Int) error {
	if owner == (common.Address{}) {
		return &AddressError{Kind: ErrInvalidApprover, Address: owner}
	}
	if spender == (common.Address{}) {
		return &AddressError{Kind: ErrInvalidSpender, Address: spender}
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	spenders, ok := l.allowances[owner]
	if !ok {
		spenders = make(map[common.Address]sdkmath.Int)
		l.allowances[owner] = spenders
	}
	spenders[spender] = amount
	return nil
}

func (l *MemoryLedger) Transfer(_ context.Context, from, to common.Address, amount sdkmath.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.transfer(from, to, amount)
}

// TransferFrom moves units out of from on behalf of spender. The allowance is
// checked before the balance, the same order an ERC20 token reverts in.
func (l *MemoryLedger) TransferFrom(_ context.Context, spender, from, to common.Address, amount sdkmath.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	allowance := l.allowance(from, spender)
	if allowance.LT(amount) {
		return &InsufficientAllowanceError{
			Spender:   spender,
			Allowance: allowance,
			Needed:    amount,
		}
	}

	if err := l.transfer(from, to, amount); err != nil {
		return err
	}

	// a missing entry means a zero allowance was spent on a zero transfer
	if spenders, ok := l.allowances[from]; ok {
		spenders[spender] = allowance.Sub(amount)
	}
	return nil
}

// transfer expects the write lock to be held.
func (l *MemoryLedger) transfer(from, to common.Address, amount sdkmath.Int) error {
	if from == (common.Address{}) {
		return &AddressError{Kind: ErrInvalidSender, Address: from}
	}
	if to == (common.Address{}) {
		return &AddressError{Kind: ErrInvalidReceiver, Address: to}
	}

	balance := l.balanceOf(from)
	if balance.LT(amount) {
		return &InsufficientBalanceError{
			Sender:  from,
			Balance: balance,
			Needed:  amount,
		}
	}

	l.balances[from] = balance.Sub(amount)
	l.balances[to] = l.balanceOf(to).Add(amount)
	return nil
}

func (l *MemoryLedger) balanceOf(account common.Address) sdkmath.Int {
	if balance, ok := l.balances[account]; ok {
		return balance
	}
	return sdkmath.ZeroInt()
}

func (l *MemoryLedger) allowance(owner, spender common.Address) sdkmath.Int {
	if allowance, ok := l.allowances[owner][spender]; ok {
		return allowance
	}
	return sdkmath.ZeroInt()
}

func validateAmount(amount sdkmath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
