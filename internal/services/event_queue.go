package services

import (
	"context"
	"errors"

	"github.com/babylonlabs-io/staking-ledger/internal/staking"
)

const eventProcessorSize = 5000

var ErrEventQueueFull = errors.New("event queue is full")

// EventQueue buffers committed pool events until the processor persists and
// publishes them. The pool emits while holding its lock so Publish never blocks.
type EventQueue struct {
	events chan staking.Event
}

func NewEventQueue(size int) *EventQueue {
	if size <= 0 {
		size = eventProcessorSize
	}
	return &EventQueue{events: make(chan staking.Event, size)}
}

func (q *EventQueue) Publish(_ context.Context, ev staking.Event) error {
	select {
	case q.events <- ev:
		return nil
	default:
		return ErrEventQueueFull
	}
}

func (q *EventQueue) Len() int {
	return len(q.events)
}
