package handlers

import (
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
)

type StakePublic struct {
	Reward        sdkmath.Int `json:"reward"`
	StakedBalance sdkmath.Int `json:"staked_balance"`
}

type WithdrawPublic struct {
	StakedBalance sdkmath.Int `json:"staked_balance"`
}

type RewardPublic struct {
	Reward sdkmath.Int `json:"reward"`
}

type UnStakePublic struct {
	Reward    sdkmath.Int `json:"reward"`
	Principal sdkmath.Int `json:"principal"`
}

func (h *Handler) Stake(r *http.Request) (*Result, *types.Error) {
	address, apiErr := parseAddressParam(r, "address")
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmountBody(r)
	if apiErr != nil {
		return nil, apiErr
	}

	reward, err := h.pool.Deposit(r.Context(), address, amount)
	if err != nil {
		return nil, MapError(err)
	}

	return NewResult(StakePublic{
		Reward:        reward,
		StakedBalance: h.pool.BalanceOf(address),
	}), nil
}

func (h *Handler) Withdraw(r *http.Request) (*Result, *types.Error) {
	address, apiErr := parseAddressParam(r, "address")
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmountBody(r)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := h.pool.Withdraw(r.Context(), address, amount); err != nil {
		return nil, MapError(err)
	}

	return NewResult(WithdrawPublic{StakedBalance: h.pool.BalanceOf(address)}), nil
}

func (h *Handler) Harvest(r *http.Request) (*Result, *types.Error) {
	address, apiErr := parseAddressParam(r, "address")
	if apiErr != nil {
		return nil, apiErr
	}

	reward, err := h.pool.Harvest(r.Context(), address)
	if err != nil {
		return nil, MapError(err)
	}

	return NewResult(RewardPublic{Reward: reward}), nil
}

func (h *Handler) ClaimReward(r *http.Request) (*Result, *types.Error) {
	address, apiErr := parseAddressParam(r, "address")
	if apiErr != nil {
		return nil, apiErr
	}

	reward, err := h.pool.ClaimReward(r.Context(), address)
	if err != nil {
		return nil, MapError(err)
	}

	return NewResult(RewardPublic{Reward: reward}), nil
}

func (h *Handler) UnStake(r *http.Request) (*Result, *types.Error) {
	address, apiErr := parseAddressParam(r, "address")
	if apiErr != nil {
		return nil, apiErr
	}

	reward, principal, err := h.pool.UnStake(r.Context(), address)
	if err != nil {
		return nil, MapError(err)
	}

	return NewResult(UnStakePublic{Reward: reward, Principal: principal}), nil
}
