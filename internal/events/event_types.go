package events

import (
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFetchApplied   EventType = "fetch_applied"
	EventFetchDiscarded EventType = "fetch_discarded"
	EventFetchFailed    EventType = "fetch_failed"
	EventTicketCreated  EventType = "ticket_created"
	EventCreateFailed   EventType = "create_failed"
	EventStatusUpdated  EventType = "status_updated"
	EventUpdateFailed   EventType = "update_failed"
)

// Event represents an outcome emitted by the mutation controller.
type Event struct {
	ID        string
	Type      EventType
	TicketID  string
	Timestamp time.Time
	Payload   interface{}
}

// FetchAppliedPayload carries the result of a fetch that replaced the
// collection.
type FetchAppliedPayload struct {
	Count int
	Total int
}

// FetchFailedPayload carries the user-facing failure message.
type FetchFailedPayload struct {
	Message string
}

// TicketCreatedPayload carries the submitted title.
type TicketCreatedPayload struct {
	Title string
}

// CreateFailedPayload carries the user-facing failure message.
type CreateFailedPayload struct {
	Message string
}

// StatusUpdatedPayload carries the optimistically applied status.
type StatusUpdatedPayload struct {
	NewStatus domain.Status
}

// UpdateFailedPayload carries the user-facing failure message.
type UpdateFailedPayload struct {
	Message string
}
