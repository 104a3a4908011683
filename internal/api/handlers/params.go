package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
	"github.com/babylonlabs-io/staking-ledger/pkg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
)

type AmountRequest struct {
	Amount string `json:"amount"`
}

func parseAddressParam(r *http.Request, name string) (common.Address, *types.Error) {
	address, err := pkg.ParseAddress(chi.URLParam(r, name))
	if err != nil {
		return common.Address{}, types.NewError(http.StatusBadRequest, types.InvalidAccount, err)
	}
	return address, nil
}

func parseAmountBody(r *http.Request) (sdkmath.Int, *types.Error) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return sdkmath.Int{}, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request body")
	}
	if req.Amount == "" {
		return sdkmath.Int{}, types.NewValidationFailedError(errors.New("amount is required"))
	}

	amount, err := pkg.ParseAmount(req.Amount)
	if err != nil {
		return sdkmath.Int{}, types.NewValidationFailedError(err)
	}
	return amount, nil
}

// parseLimitQuery returns 0 when limit is absent, the db layer then applies
// its configured maximum.
func parseLimitQuery(r *http.Request) (int64, *types.Error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		return 0, types.NewValidationFailedError(fmt.Errorf("invalid limit %q", raw))
	}
	return limit, nil
}
