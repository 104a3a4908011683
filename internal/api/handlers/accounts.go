package handlers

import (
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
)

type AccountPublic struct {
	Address        string      `json:"address"`
	StakedBalance  sdkmath.Int `json:"staked_balance"`
	LastCheckpoint int64       `json:"last_checkpoint"`
	Earned         sdkmath.Int `json:"earned"`
	State          string      `json:"state"`
}

type EarnedPublic struct {
	Earned sdkmath.Int `json:"earned"`
}

type EventPublic struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Amount         string `json:"amount"`
	Reward         string `json:"reward"`
	Principal      string `json:"principal"`
	StakedBalance  string `json:"staked_balance"`
	LastCheckpoint int64  `json:"last_checkpoint"`
	TotalStaked    string `json:"total_staked"`
	Timestamp      int64  `json:"timestamp"`
}

func (h *Handler) GetAccount(r *http.Request) (*Result, *types.Error) {
	address, apiErr := parseAddressParam(r, "address")
	if apiErr != nil {
		return nil, apiErr
	}

	acc, earned, err := h.pool.AccountWithEarned(address)
	if err != nil {
		return nil, MapError(err)
	}

	return NewResult(AccountPublic{
		Address:        acc.Address.Hex(),
		StakedBalance:  acc.StakedBalance,
		LastCheckpoint: acc.LastCheckpoint,
		Earned:         earned,
		State:          acc.State().String(),
	}), nil
}

func (h *Handler) GetEarned(r *http.Request) (*Result, *types.Error) {
	address, apiErr := parseAddressParam(r, "address")
	if apiErr != nil {
		return nil, apiErr
	}

	earned, err := h.pool.Earned(address)
	if err != nil {
		return nil, MapError(err)
	}

	return NewResult(EarnedPublic{Earned: earned}), nil
}

func (h *Handler) GetAccountEvents(r *http.Request) (*Result, *types.Error) {
	address, apiErr := parseAddressParam(r, "address")
	if apiErr != nil {
		return nil, apiErr
	}
	limit, apiErr := parseLimitQuery(r)
	if apiErr != nil {
		return nil, apiErr
	}

	docs, err := h.db.GetStakingEventsByAccount(r.Context(), address, limit)
	if err != nil {
		return nil, MapError(err)
	}

	events := make([]EventPublic, 0, len(docs))
	for _, doc := range docs {
		events = append(events, eventFromDocument(doc))
	}

	return NewResult(events), nil
}

func eventFromDocument(doc model.StakingEventDocument) EventPublic {
	return EventPublic{
		ID:             doc.ID,
		Type:           doc.Type,
		Amount:         doc.Amount,
		Reward:         doc.Reward,
		Principal:      doc.Principal,
		StakedBalance:  doc.StakedBalance,
		LastCheckpoint: doc.LastCheckpoint,
		TotalStaked:    doc.TotalStaked,
		Timestamp:      doc.Timestamp,
	}
}
