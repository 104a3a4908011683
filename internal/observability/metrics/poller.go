package metrics

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// PollFunc matches the poll method accepted by poller.NewPoller.
type PollFunc = func(ctx context.Context) error

// RecordPollerDuration wraps f so that each run is observed in the poller
// histogram under typ, split by outcome.
func RecordPollerDuration(typ string, f PollFunc) PollFunc {
	return func(ctx context.Context) error {
		start := time.Now()
		err := f(ctx)
		d := time.Since(start)

		status := Success
		if err != nil {
			status = Error
		}
		pollerDurationHistogram.WithLabelValues(typ, status.String()).Observe(d.Seconds())
		log.Ctx(ctx).Trace().
			Str("poller", typ).
			Dur("duration", d).
			Stringer("status", status).
			Msg("poll finished")

		return err
	}
}
