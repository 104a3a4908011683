package types

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError     ErrorCode = "INTERNAL_SERVICE_ERROR"
	ValidationError          ErrorCode = "VALIDATION_ERROR"
	BadRequest               ErrorCode = "BAD_REQUEST"
	NotFound                 ErrorCode = "NOT_FOUND"
	InvalidAccount           ErrorCode = "INVALID_ACCOUNT"
	ZeroAmount               ErrorCode = "ZERO_AMOUNT"
	InsufficientStakedAmount ErrorCode = "INSUFFICIENT_STAKED_AMOUNT"
	RewardIsZero             ErrorCode = "REWARD_IS_ZERO"
	InsufficientPoolBalance  ErrorCode = "INSUFFICIENT_POOL_BALANCE"
	InsufficientBalance      ErrorCode = "INSUFFICIENT_BALANCE"
	InsufficientAllowance    ErrorCode = "INSUFFICIENT_ALLOWANCE"
	PoolAccountingError      ErrorCode = "POOL_ACCOUNTING_ERROR"
)

// Error is the error type handlers and services return. StatusCode is the http
// status the api layer responds with.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewValidationFailedError(err error) *Error {
	return NewError(http.StatusBadRequest, ValidationError, err)
}

func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}
