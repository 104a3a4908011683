package types

import "strings"

type EventType string

func (e EventType) String() string {
	return string(e)
}

// RoutingKey is the queue routing key events of this type are published under.
func (e EventType) RoutingKey() string {
	return "staking." + strings.ToLower(string(e))
}

const (
	EventStaked     EventType = "Staked"
	EventWithdraw   EventType = "Withdraw"
	EventRewardPaid EventType = "RewardPaid"
	EventUnStaked   EventType = "UnStaked"
)
