package services

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/babylonlabs-io/staking-ledger/internal/db"
	"github.com/babylonlabs-io/staking-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// time left to flush buffered events once the service is shutting down
const drainTimeout = 30 * time.Second

// StartEventProcessor handles events one at a time so account snapshots are
// written in commit order. It returns once ctx is done and the buffer is flushed.
// An event already taken off the queue is finished even if ctx is cancelled
// meanwhile, retries are bounded by the queue config.
func (s *Service) StartEventProcessor(ctx context.Context) {
	log.Ctx(ctx).Info().Msg("Starting staking event processor")
	processCtx := context.WithoutCancel(ctx)

	for {
		select {
		case ev := <-s.events.events:
			if err := s.processEvent(processCtx, &ev); err != nil {
				log.Ctx(ctx).Error().Err(err).
					Str("event_id", ev.ID).
					Stringer("event_type", ev.Type).
					Msg("Failed to process staking event")
			}
		case <-ctx.Done():
			s.drainEvents(ctx)
			return
		}
	}
}

func (s *Service) drainEvents(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()

	pending := s.events.Len()
	log.Ctx(ctx).Info().Int("pending", pending).Msg("Event processor stopping, flushing buffered events")

	for range pending {
		ev := <-s.events.events
		if err := s.processEvent(ctx, &ev); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("event_id", ev.ID).Msg("Failed to flush staking event")
		}
	}
}

// processEvent stores the event and publishes it in parallel. Both sides are
// idempotent on the event id so a retry never produces duplicates.
func (s *Service) processEvent(ctx context.Context, ev *staking.Event) error {
	startTime := time.Now()
	var attempts uint

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		return s.callWithRetry(ctx, "persist", &attempts, func() error {
			return s.persistEvent(ctx, ev)
		})
	})
	p.Go(func(ctx context.Context) error {
		err := s.callWithRetry(ctx, "publish", nil, func() error {
			return s.consumer.PushStakingEvent(ctx, ev)
		})
		if err != nil {
			metrics.RecordQueueSendError()
			return fmt.Errorf("failed to publish staking event %s: %w", ev.ID, err)
		}
		return nil
	})
	err := p.Wait()

	metrics.RecordEventProcessingDuration(time.Since(startTime), ev.Type.String(), int(attempts), err != nil)
	return err
}

func (s *Service) persistEvent(ctx context.Context, ev *staking.Event) error {
	err := s.db.SaveStakingEvent(ctx, model.FromStakingEvent(ev))
	if err != nil && !db.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to save staking event %s: %w", ev.ID, err)
	}

	if err := s.db.UpsertStakingAccount(ctx, model.AccountFromStakingEvent(ev)); err != nil {
		return fmt.Errorf("failed to update account %s: %w", ev.Account.Hex(), err)
	}

	return nil
}

// callWithRetry retries call with exponential backoff using the queue retry
// settings. retries, when set, receives the number of failed attempts.
func (s *Service) callWithRetry(ctx context.Context, name string, retries *uint, call retry.RetryableFunc) error {
	maxAttempts := s.cfg.Queue.MaxRetryTimes

	return retry.Do(
		call,
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(s.cfg.Queue.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if retries != nil {
				*retries = n + 1
			}
			log.Ctx(ctx).Debug().
				Str("call", name).
				Uint("attempt", n+1).
				Uint("max_attempts", maxAttempts).
				Err(err).
				Msg("failed to process staking event, retrying")
		}),
	)
}
