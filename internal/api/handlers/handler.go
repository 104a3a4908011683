package handlers

import (
	"errors"
	"net/http"

	"github.com/babylonlabs-io/staking-ledger/internal/asset"
	"github.com/babylonlabs-io/staking-ledger/internal/db"
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
)

type Handler struct {
	pool staking.PoolInterface
	db   db.DbInterface
	// approver is nil when the asset ledger manages allowances itself
	approver asset.Approver
}

// Result is what a handler returns on success. Data is wrapped in
// PublicResponse before it is written.
type Result struct {
	Data   any
	Status int
}

type PublicResponse[T any] struct {
	Data T `json:"data"`
}

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func NewResult[T any](data T) *Result {
	return &Result{Data: PublicResponse[T]{Data: data}, Status: http.StatusOK}
}

func New(pool staking.PoolInterface, db db.DbInterface, approver asset.Approver) *Handler {
	return &Handler{
		pool:     pool,
		db:       db,
		approver: approver,
	}
}

// MapError translates pool, asset ledger and db errors into the api error type.
// Order matters: a pool balance failure also wraps an asset balance error.
func MapError(err error) *types.Error {
	var apiErr *types.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, staking.ErrInvalidAccount), errors.Is(err, staking.ErrInvalidAddress):
		return types.NewError(http.StatusBadRequest, types.InvalidAccount, err)
	case errors.Is(err, staking.ErrZeroAmount):
		return types.NewError(http.StatusBadRequest, types.ZeroAmount, err)
	case errors.Is(err, staking.ErrNegativeAmount), errors.Is(err, staking.ErrAmountTooLarge):
		return types.NewValidationFailedError(err)
	case errors.Is(err, staking.ErrInsufficientStakedAmount):
		return types.NewError(http.StatusBadRequest, types.InsufficientStakedAmount, err)
	case errors.Is(err, staking.ErrRewardIsZero):
		return types.NewError(http.StatusBadRequest, types.RewardIsZero, err)
	case errors.Is(err, staking.ErrInsufficientPoolBalance):
		return types.NewError(http.StatusConflict, types.InsufficientPoolBalance, err)
	case errors.Is(err, staking.ErrTotalStakedUnderflow):
		return types.NewError(http.StatusConflict, types.PoolAccountingError, err)
	case errors.Is(err, asset.ErrInsufficientAllowance):
		return types.NewError(http.StatusBadRequest, types.InsufficientAllowance, err)
	case errors.Is(err, asset.ErrInsufficientBalance):
		return types.NewError(http.StatusBadRequest, types.InsufficientBalance, err)
	case db.IsNotFoundError(err):
		return types.NewError(http.StatusNotFound, types.NotFound, err)
	default:
		return types.NewInternalServiceError(err)
	}
}
