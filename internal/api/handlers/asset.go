package handlers

import (
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/asset"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
)

type AllowancePublic struct {
	Owner     string      `json:"owner"`
	Spender   string      `json:"spender"`
	Allowance sdkmath.Int `json:"allowance"`
}

// ApprovePool lets the pool pull amount from the owner on the next stake. Only
// available when the service runs its own asset ledger.
func (h *Handler) ApprovePool(r *http.Request) (*Result, *types.Error) {
	if h.approver == nil {
		return nil, types.NewError(http.StatusNotImplemented, types.BadRequest, asset.ErrApproveUnsupported)
	}

	owner, apiErr := parseAddressParam(r, "address")
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmountBody(r)
	if apiErr != nil {
		return nil, apiErr
	}

	spender := h.pool.Address()
	if err := h.approver.Approve(r.Context(), owner, spender, amount); err != nil {
		return nil, types.NewValidationFailedError(err)
	}

	return NewResult(AllowancePublic{
		Owner:     owner.Hex(),
		Spender:   spender.Hex(),
		Allowance: amount,
	}), nil
}
