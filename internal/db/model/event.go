package model

import (
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
)

// StakingEventDocument is the history record of a committed pool operation.
// Amounts are stored as base 10 strings since they can exceed int64.
type StakingEventDocument struct {
	ID             string `bson:"_id"`
	Type           string `bson:"type"`
	Account        string `bson:"account"`
	Amount         string `bson:"amount"`
	Reward         string `bson:"reward"`
	Principal      string `bson:"principal"`
	StakedBalance  string `bson:"staked_balance"`
	LastCheckpoint int64  `bson:"last_checkpoint"`
	TotalStaked    string `bson:"total_staked"`
	Timestamp      int64  `bson:"timestamp"`
}

func FromStakingEvent(ev *staking.Event) *StakingEventDocument {
	return &StakingEventDocument{
		ID:             ev.ID,
		Type:           ev.Type.String(),
		Account:        ev.Account.Hex(),
		Amount:         ev.Amount.String(),
		Reward:         ev.Reward.String(),
		Principal:      ev.Principal.String(),
		StakedBalance:  ev.StakedBalance.String(),
		LastCheckpoint: ev.LastCheckpoint,
		TotalStaked:    ev.TotalStaked.String(),
		Timestamp:      ev.Timestamp,
	}
}
