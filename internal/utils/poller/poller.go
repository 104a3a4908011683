package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(*Poller)

// WithRunOnStart makes the poller run its method once before the first tick.
func WithRunOnStart() Option {
	return func(p *Poller) {
		p.runOnStart = true
	}
}

type Poller struct {
	interval   time.Duration
	runOnStart bool
	quit       chan struct{}
	stopOnce   sync.Once
	pollMethod func(ctx context.Context) error
}

func NewPoller(interval time.Duration, pollMethod func(ctx context.Context) error, opts ...Option) *Poller {
	p := &Poller{
		interval:   interval,
		quit:       make(chan struct{}),
		pollMethod: pollMethod,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start blocks until ctx is done or Stop is called. Poll errors are logged
// and the next tick runs as usual.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Ctx(ctx).Info().
		Dur("interval", p.interval).
		Bool("run_on_start", p.runOnStart).
		Msg("starting poller")

	if p.runOnStart {
		p.poll(ctx)
	}

	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			log.Ctx(ctx).Info().Msg("poller stopped due to context cancellation")
			return
		case <-p.quit:
			log.Ctx(ctx).Info().Msg("poller stopped")
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if err := p.pollMethod(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error polling")
	}
}

// Stop is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
	})
}
