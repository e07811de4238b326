package worker

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/libenaigi/CUHIRE/internal/events"
)

// Publisher delivers an encoded event to an external channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// EventRelay buffers domain events and publishes them off the request path.
type EventRelay struct {
	publisher Publisher
	channel   string
	logger    *zap.Logger
	queue     chan events.Event
	done      chan struct{}
	startOnce sync.Once
}

// NewEventRelay builds a relay with the given buffer size.
func NewEventRelay(publisher Publisher, channel string, buffer int, logger *zap.Logger) *EventRelay {
	if buffer <= 0 {
		buffer = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventRelay{
		publisher: publisher,
		channel:   channel,
		logger:    logger,
		queue:     make(chan events.Event, buffer),
		done:      make(chan struct{}),
	}
}

// Enqueue hands an event to the relay without blocking. A full buffer drops
// the event.
func (r *EventRelay) Enqueue(event events.Event) bool {
	select {
	case r.queue <- event:
		return true
	default:
		r.logger.Warn("event relay buffer full; dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
		return false
	}
}

// Start launches the publishing loop. It returns immediately; the loop
// drains queued events and exits once ctx is cancelled.
func (r *EventRelay) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		go r.run(ctx)
	})
}

// Done is closed after the publishing loop exits.
func (r *EventRelay) Done() <-chan struct{} {
	return r.done
}

func (r *EventRelay) run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case event := <-r.queue:
			r.publish(ctx, event)
		case <-ctx.Done():
			r.drain()
			return
		}
	}
}

func (r *EventRelay) drain() {
	for {
		select {
		case event := <-r.queue:
			r.publish(context.Background(), event)
		default:
			return
		}
	}
}

func (r *EventRelay) publish(ctx context.Context, event events.Event) {
	if r.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("encode event", zap.String("event_id", event.ID), zap.Error(err))
		return
	}
	if err := r.publisher.Publish(ctx, r.channel, payload); err != nil {
		r.logger.Warn("publish event",
			zap.String("event_id", event.ID),
			zap.String("channel", r.channel),
			zap.Error(err))
	}
}
