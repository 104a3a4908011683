package handlers

import (
	"net/http"

	"github.com/babylonlabs-io/staking-ledger/internal/types"
)

func (h *Handler) HealthCheck(r *http.Request) (*Result, *types.Error) {
	if err := h.db.Ping(r.Context()); err != nil {
		return nil, types.NewError(http.StatusServiceUnavailable, types.InternalServiceError, err)
	}

	return NewResult("Server is up and running"), nil
}
