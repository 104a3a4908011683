package asset

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/observability/metrics"
	"github.com/ethereum/go-ethereum/common"
)

type ledgerWithMetrics struct {
	ledger LedgerInterface
}

func NewLedgerWithMetrics(ledger LedgerInterface) *ledgerWithMetrics {
	return &ledgerWithMetrics{ledger: ledger}
}

func (l *ledgerWithMetrics) Address() common.Address {
	return l.ledger.Address()
}

func (l *ledgerWithMetrics) BalanceOf(ctx context.Context, account common.Address) (sdkmath.Int, error) {
	return runLedgerMethodWithMetrics("BalanceOf", func() (sdkmath.Int, error) {
		return l.ledger.BalanceOf(ctx, account)
	})
}

func (l *ledgerWithMetrics) Allowance(ctx context.Context, owner, spender common.Address) (sdkmath.Int, error) {
	return runLedgerMethodWithMetrics("Allowance", func() (sdkmath.Int, error) {
		return l.ledger.Allowance(ctx, owner, spender)
	})
}

func (l *ledgerWithMetrics) Transfer(ctx context.Context, from, to common.Address, amount sdkmath.Int) error {
	_, err := runLedgerMethodWithMetrics("Transfer", func() (struct{}, error) {
		return struct{}{}, l.ledger.Transfer(ctx, from, to, amount)
	})
	return err
}

func (l *ledgerWithMetrics) TransferFrom(ctx context.Context, spender, from, to common.Address, amount sdkmath.Int) error {
	_, err := runLedgerMethodWithMetrics("TransferFrom", func() (struct{}, error) {
		return struct{}{}, l.ledger.TransferFrom(ctx, spender, from, to, amount)
	})
	return err
}

// Approve is forwarded only when the wrapped ledger supports it.
func (l *ledgerWithMetrics) Approve(ctx context.Context, owner, spender common.Address, amount sdkmath.Int) error {
	approver, ok := l.ledger.(Approver)
	if !ok {
		return ErrApproveUnsupported
	}

	_, err := runLedgerMethodWithMetrics("Approve", func() (struct{}, error) {
		return struct{}{}, approver.Approve(ctx, owner, spender, amount)
	})
	return err
}

func runLedgerMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordAssetLedgerLatency(duration, method, err != nil)
	return v, err
}
