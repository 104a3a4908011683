package types

import "fmt"

// Enum values for staking account state
type AccountState string

const (
	StateUnstaked AccountState = "UNSTAKED"
	StateStaked   AccountState = "STAKED"
)

func (s AccountState) String() string {
	return string(s)
}

func AccountStateFromString(s string) (AccountState, error) {
	switch s {
	case StateUnstaked.String():
		return StateUnstaked, nil
	case StateStaked.String():
		return StateStaked, nil
	default:
		return "", fmt.Errorf("invalid account state: %s", s)
	}
}
