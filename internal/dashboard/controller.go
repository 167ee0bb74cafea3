package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/api"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/store"
	apperrors "github.com/spec-kit/ticket-dashboard/pkg/util"
)

// ErrBusy is returned when a flow is re-submitted while its previous
// request is still outstanding.
var ErrBusy = errors.New("a request for this action is already in flight")

// ApiService is the remote surface the controller drives.
type ApiService interface {
	FetchAssignedTickets(ctx context.Context) (*api.FetchResult, error)
	CreateTicket(ctx context.Context, input api.CreateTicketInput) error
	UpdateTicketStatus(ctx context.Context, ticketID string, status domain.Status) error
}

// NotificationSink surfaces outcome messages to the user. It is an
// external collaborator; the controller never renders anything itself.
type NotificationSink interface {
	Success(message string)
	Error(message string)
}

// Reconciler accepts requests for a background re-fetch.
type Reconciler interface {
	Enqueue()
}

// Controller orchestrates the fetch, create, and update flows against
// the store. Failures abort the operation, leave prior state
// untouched, and are published as events for the notifier; they are
// never propagated past the caller that triggered the flow.
type Controller struct {
	api        ApiService
	store      *store.TicketStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	reconciler Reconciler

	fetching int64
	creating atomic.Bool
	updating atomic.Bool
}

// Dependencies bundles collaborators for the controller.
type Dependencies struct {
	API        ApiService
	Store      *store.TicketStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewController constructs the controller.
func NewController(deps Dependencies) *Controller {
	return &Controller{
		api:        deps.API,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// AttachReconciler wires the background re-fetch worker. Without one,
// post-mutation reconciliation is skipped.
func (c *Controller) AttachReconciler(r Reconciler) {
	c.reconciler = r
}

// Refresh fetches the assigned tickets and replaces the collection.
// Concurrent fetches are not de-duplicated; sequence numbers ensure
// only the newest response wins when they overlap. The loading flag
// always resolves, success or failure.
func (c *Controller) Refresh(ctx context.Context) error {
	atomic.AddInt64(&c.fetching, 1)
	defer atomic.AddInt64(&c.fetching, -1)

	seq := c.store.BeginFetch()
	result, err := c.api.FetchAssignedTickets(ctx)
	if err != nil {
		c.publish(events.Event{
			Type:    events.EventFetchFailed,
			Payload: events.FetchFailedPayload{Message: apperrors.UserMessage(err)},
		})
		return err
	}

	if !c.store.ApplyFetch(seq, result.Tickets, result.Total) {
		c.logger.Debug("discarded stale fetch response", zap.Uint64("seq", seq))
		c.publish(events.Event{Type: events.EventFetchDiscarded})
		return nil
	}

	c.publish(events.Event{
		Type: events.EventFetchApplied,
		Payload: events.FetchAppliedPayload{
			Count: len(result.Tickets),
			Total: result.Total,
		},
	})
	return nil
}

// CreateTicket submits a new ticket. On success the caller should
// clear and close the create form; the record itself arrives through
// the reconcile fetch, since the server owns the ticket's identity and
// timestamps. On failure the form stays open with its values intact.
func (c *Controller) CreateTicket(ctx context.Context, input api.CreateTicketInput) error {
	if !c.creating.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.creating.Store(false)

	if err := c.api.CreateTicket(ctx, input); err != nil {
		c.publish(events.Event{
			Type:    events.EventCreateFailed,
			Payload: events.CreateFailedPayload{Message: apperrors.UserMessage(err)},
		})
		return err
	}

	c.publish(events.Event{
		Type:    events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{Title: input.Title},
	})
	c.enqueueReconcile()
	return nil
}

// UpdateStatus submits a status change. On success the store is
// patched immediately so the change is visible without waiting for
// confirmation, then a background re-fetch reconciles server-side
// ordering and stats. On failure nothing is mutated locally.
func (c *Controller) UpdateStatus(ctx context.Context, ticketID string, status domain.Status) error {
	if !c.updating.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.updating.Store(false)

	if err := c.api.UpdateTicketStatus(ctx, ticketID, status); err != nil {
		c.publish(events.Event{
			Type:     events.EventUpdateFailed,
			TicketID: ticketID,
			Payload:  events.UpdateFailedPayload{Message: apperrors.UserMessage(err)},
		})
		return err
	}

	if !c.store.PatchStatus(ticketID, status) {
		c.logger.Warn("updated ticket not found in local collection",
			zap.String("ticket_id", ticketID))
	}
	c.publish(events.Event{
		Type:     events.EventStatusUpdated,
		TicketID: ticketID,
		Payload:  events.StatusUpdatedPayload{NewStatus: status},
	})
	c.enqueueReconcile()
	return nil
}

// Loading reports whether any fetch is in flight.
func (c *Controller) Loading() bool {
	return atomic.LoadInt64(&c.fetching) > 0
}

// Creating reports whether a create submission is in flight.
func (c *Controller) Creating() bool {
	return c.creating.Load()
}

// Updating reports whether an update submission is in flight.
func (c *Controller) Updating() bool {
	return c.updating.Load()
}

func (c *Controller) enqueueReconcile() {
	if c.reconciler != nil {
		c.reconciler.Enqueue()
	}
}

func (c *Controller) publish(event events.Event) {
	if c.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = c.dispatcher.Publish(context.Background(), event)
}
