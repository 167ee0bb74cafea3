package dashboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/events"
)

// Notifier turns controller events into user-visible notices and
// structured logs.
type Notifier struct {
	dispatcher events.Dispatcher
	sink       NotificationSink
	logger     *zap.Logger
}

// NewNotifier creates the notifier.
func NewNotifier(dispatcher events.Dispatcher, sink NotificationSink, logger *zap.Logger) *Notifier {
	return &Notifier{
		dispatcher: dispatcher,
		sink:       sink,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *Notifier) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventFetchApplied, n.handleFetchApplied)
	n.dispatcher.Subscribe(events.EventFetchFailed, n.handleFailure)
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventCreateFailed, n.handleFailure)
	n.dispatcher.Subscribe(events.EventStatusUpdated, n.handleStatusUpdated)
	n.dispatcher.Subscribe(events.EventUpdateFailed, n.handleFailure)
}

func (n *Notifier) handleFetchApplied(ctx context.Context, event events.Event) error {
	n.logger.Debug("FetchApplied", zap.Any("payload", event.Payload))
	return nil
}

func (n *Notifier) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.Any("payload", event.Payload))
	n.sink.Success("Ticket created successfully")
	return nil
}

func (n *Notifier) handleStatusUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("StatusUpdated",
		zap.String("ticket_id", event.TicketID),
		zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.StatusUpdatedPayload); ok {
		n.sink.Success(fmt.Sprintf("Ticket marked %s", payload.NewStatus))
		return nil
	}
	n.sink.Success("Ticket status updated")
	return nil
}

func (n *Notifier) handleFailure(ctx context.Context, event events.Event) error {
	message := failureMessage(event)
	n.logger.Warn(string(event.Type),
		zap.String("ticket_id", event.TicketID),
		zap.String("message", message))
	n.sink.Error(message)
	return nil
}

func failureMessage(event events.Event) string {
	switch payload := event.Payload.(type) {
	case events.FetchFailedPayload:
		return payload.Message
	case events.CreateFailedPayload:
		return payload.Message
	case events.UpdateFailedPayload:
		return payload.Message
	}
	return "request failed"
}
