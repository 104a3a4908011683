package model

import (
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
)

// StakingAccountDocument is the latest known state of an account, keyed by its
// checksummed address.
type StakingAccountDocument struct {
	ID             string `bson:"_id"`
	StakedBalance  string `bson:"staked_balance"`
	LastCheckpoint int64  `bson:"last_checkpoint"`
	State          string `bson:"state"`
	LastEventID    string `bson:"last_event_id"`
	UpdatedAt      int64  `bson:"updated_at"`
}

func AccountFromStakingEvent(ev *staking.Event) *StakingAccountDocument {
	acc := staking.Account{
		Address:        ev.Account,
		StakedBalance:  ev.StakedBalance,
		LastCheckpoint: ev.LastCheckpoint,
	}

	return &StakingAccountDocument{
		ID:             ev.Account.Hex(),
		StakedBalance:  ev.StakedBalance.String(),
		LastCheckpoint: ev.LastCheckpoint,
		State:          acc.State().String(),
		LastEventID:    ev.ID,
		UpdatedAt:      ev.Timestamp,
	}
}
