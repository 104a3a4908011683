package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/algorand/go-deadlock"
	"github.com/babylonlabs-io/staking-ledger/internal/config"
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var ErrNotStarted = errors.New("queue manager is not started")

// QueueManager publishes staking events to a topic exchange. Every publish
// waits for the broker confirmation so a returned nil means the event is durable.
type QueueManager struct {
	cfg    *config.QueueConfig
	logger *zap.Logger

	mu      deadlock.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	if cfg == nil {
		return nil, errors.New("nil queue config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &QueueManager{
		cfg:    cfg,
		logger: logger.With(zap.String("exchange", cfg.Exchange)),
	}, nil
}

// Start dials the broker and declares the exchange. Calling it on a started
// manager is a no-op.
func (qm *QueueManager) Start() error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.connected() {
		return nil
	}
	return qm.connect()
}

// connected expects qm.mu to be held.
func (qm *QueueManager) connected() bool {
	return qm.conn != nil && !qm.conn.IsClosed() &&
		qm.channel != nil && !qm.channel.IsClosed()
}

// connect dials a fresh connection and channel, releasing what is left of
// the previous ones. It expects qm.mu to be held.
func (qm *QueueManager) connect() error {
	if qm.conn != nil && !qm.conn.IsClosed() {
		_ = qm.conn.Close()
	}

	conn, err := amqp.Dial(dialURL(qm.cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to queue: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open queue channel: %w", err)
	}

	err = ch.ExchangeDeclare(qm.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", qm.cfg.Exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	qm.conn = conn
	qm.channel = ch
	qm.logger.Info("queue manager connected")

	return nil
}

// publishChannel returns the channel to publish on. A connection or channel
// closed by the broker is redialed, a manager that was never started or was
// stopped returns ErrNotStarted.
func (qm *QueueManager) publishChannel() (*amqp.Channel, error) {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.conn == nil {
		return nil, ErrNotStarted
	}
	if qm.connected() {
		return qm.channel, nil
	}

	qm.logger.Warn("queue connection lost, reconnecting")
	if err := qm.connect(); err != nil {
		return nil, err
	}
	return qm.channel, nil
}

func (qm *QueueManager) PushStakingEvent(ctx context.Context, ev *staking.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal staking event: %w", err)
	}

	ch, err := qm.publishChannel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.PublishTimeout)
	defer cancel()

	routingKey := ev.Type.RoutingKey()
	confirmation, err := ch.PublishWithDeferredConfirmWithContext(ctx, qm.cfg.Exchange, routingKey, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.ID,
			Type:         ev.Type.String(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", ev.ID, err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to confirm event %s: %w", ev.ID, err)
	}
	if !acked {
		return fmt.Errorf("event %s was nacked by the broker", ev.ID)
	}

	qm.logger.Debug("staking event published",
		zap.String("event_id", ev.ID),
		zap.String("routing_key", routingKey),
	)

	return nil
}

func (qm *QueueManager) Stop() error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.conn == nil {
		return nil
	}

	var errs []error
	if qm.channel != nil && !qm.channel.IsClosed() {
		errs = append(errs, qm.channel.Close())
	}
	if !qm.conn.IsClosed() {
		errs = append(errs, qm.conn.Close())
	}
	qm.conn = nil
	qm.channel = nil

	return errors.Join(errs...)
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	qm.logger.Info("shutting down queue manager")
	if err := qm.Stop(); err != nil {
		qm.logger.Error("failed to close queue connection", zap.Error(err))
	}
}

func dialURL(cfg *config.QueueConfig) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Url,
	}
	return u.String()
}
