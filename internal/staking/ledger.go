package staking

import (
	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
	"github.com/ethereum/go-ethereum/common"
)

// Account is a participant's record in the pool. A zero LastCheckpoint means
// the reward clock is not running.
type Account struct {
	Address        common.Address `json:"address"`
	StakedBalance  sdkmath.Int    `json:"staked_balance"`
	LastCheckpoint int64          `json:"last_checkpoint"`
}

func (a Account) IsStaked() bool {
	return a.StakedBalance.IsPositive() && a.LastCheckpoint > 0
}

func (a Account) State() types.AccountState {
	if a.IsStaked() {
		return types.StateStaked
	}
	return types.StateUnstaked
}

// ledger holds the account records and the pool total. An absent entry is an
// account with a zero balance and a zero checkpoint; records are zeroed on exit,
// never deleted. ledger does no locking of its own, Pool serializes access.
type ledger struct {
	accounts    map[common.Address]Account
	totalStaked sdkmath.Int
}

func newLedger() *ledger {
	return &ledger{
		accounts:    make(map[common.Address]Account),
		totalStaked: sdkmath.ZeroInt(),
	}
}

func (l *ledger) get(address common.Address) Account {
	if acc, ok := l.accounts[address]; ok {
		return acc
	}
	return Account{
		Address:        address,
		StakedBalance:  sdkmath.ZeroInt(),
		LastCheckpoint: 0,
	}
}

func (l *ledger) deposit(address common.Address, amount sdkmath.Int, now int64) {
	acc := l.get(address)
	acc.StakedBalance = acc.StakedBalance.Add(amount)
	acc.LastCheckpoint = now
	l.accounts[address] = acc
	l.totalStaked = l.totalStaked.Add(amount)
}

// withdraw leaves the checkpoint untouched so the remaining balance keeps accruing.
func (l *ledger) withdraw(address common.Address, amount sdkmath.Int) {
	acc := l.get(address)
	acc.StakedBalance = acc.StakedBalance.Sub(amount)
	l.accounts[address] = acc
	l.totalStaked = l.totalStaked.Sub(amount)
}

func (l *ledger) checkpoint(address common.Address, now int64) {
	acc := l.get(address)
	acc.LastCheckpoint = now
	l.accounts[address] = acc
}

// drain takes amount out of the pool total without touching any account.
func (l *ledger) drain(amount sdkmath.Int) {
	l.totalStaked = l.totalStaked.Sub(amount)
}

// exit zeroes the account and removes its principal from the pool total.
func (l *ledger) exit(address common.Address) {
	acc := l.get(address)
	l.totalStaked = l.totalStaked.Sub(acc.StakedBalance)
	acc.StakedBalance = sdkmath.ZeroInt()
	acc.LastCheckpoint = 0
	l.accounts[address] = acc
}

func (l *ledger) canDrain(amount sdkmath.Int) bool {
	return l.totalStaked.GTE(amount)
}

// principal sums the balances owed to accounts. It differs from totalStaked
// once rewards have been claimed.
func (l *ledger) principal() (sum sdkmath.Int, stakers int) {
	sum = sdkmath.ZeroInt()
	for _, acc := range l.accounts {
		if acc.StakedBalance.IsPositive() {
			sum = sum.Add(acc.StakedBalance)
			stakers++
		}
	}
	return sum, stakers
}
