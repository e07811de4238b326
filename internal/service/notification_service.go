package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/libenaigi/CUHIRE/internal/events"
)

// EventForwarder hands events to an out-of-process sink without blocking.
type EventForwarder interface {
	Enqueue(event events.Event) bool
}

// NotificationService logs domain events and forwards them to the relay.
type NotificationService struct {
	dispatcher events.Dispatcher
	forwarder  EventForwarder
	logger     *zap.Logger
}

// NewNotificationService creates the service. forwarder may be nil.
func NewNotificationService(dispatcher events.Dispatcher, forwarder EventForwarder, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		forwarder:  forwarder,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventJobCreated, n.handleJobEvent)
	n.dispatcher.Subscribe(events.EventJobUpdated, n.handleJobEvent)
	n.dispatcher.Subscribe(events.EventJobDeactivated, n.handleJobEvent)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered",
		zap.String("user_id", event.SubjectID),
		zap.String("role", event.Actor.Role.String()))
	n.forward(event)
	return nil
}

func (n *NotificationService) handleJobEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("JobLifecycle",
		zap.String("event_type", string(event.Type)),
		zap.String("job_id", event.SubjectID),
		zap.String("actor_id", event.Actor.UserID))
	n.forward(event)
	return nil
}

func (n *NotificationService) forward(event events.Event) {
	if n.forwarder == nil {
		return
	}
	if !n.forwarder.Enqueue(event) {
		n.logger.Debug("event not forwarded",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
}
