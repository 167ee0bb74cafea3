package api

import (
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// UserPayload mirrors the server's JSON shape for a user reference.
type UserPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// TicketPayload mirrors the server's JSON shape for a ticket.
type TicketPayload struct {
	ID          string      `json:"id"`
	TicketID    string      `json:"ticketId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	Priority    string      `json:"priority"`
	CreatedBy   UserPayload `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	FileURL     string      `json:"fileUrl,omitempty"`
}

// AssignedTicketsResponse is the GET /tickets/my-assigned-tickets body.
type AssignedTicketsResponse struct {
	Success bool            `json:"success"`
	Tickets []TicketPayload `json:"tickets"`
	Total   int             `json:"total"`
}

// MutationResponse is the body returned by create and update calls.
// The success flag is a pointer because the backend sometimes omits
// it on otherwise-successful update responses.
type MutationResponse struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// UpdateStatusRequest is the PUT /tickets/{id} body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToDomain converts a wire ticket into the domain model. Status and
// priority keep their raw value when unrecognized so the stats total
// still counts them.
func (p TicketPayload) ToDomain() domain.Ticket {
	status := domain.Status(p.Status)
	if parsed, ok := domain.ParseStatus(p.Status); ok {
		status = parsed
	}
	priority := domain.Priority(p.Priority)
	if parsed, ok := domain.ParsePriority(p.Priority); ok {
		priority = parsed
	}
	return domain.Ticket{
		ID:          p.ID,
		TicketID:    p.TicketID,
		Title:       p.Title,
		Description: p.Description,
		Status:      status,
		Priority:    priority,
		CreatedBy: domain.UserRef{
			FirstName: p.CreatedBy.FirstName,
			LastName:  p.CreatedBy.LastName,
			Email:     p.CreatedBy.Email,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		FileURL:   p.FileURL,
	}
}

// FromDomain converts a domain ticket into its wire shape.
func FromDomain(t domain.Ticket) TicketPayload {
	return TicketPayload{
		ID:          t.ID,
		TicketID:    t.TicketID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedBy: UserPayload{
			FirstName: t.CreatedBy.FirstName,
			LastName:  t.CreatedBy.LastName,
			Email:     t.CreatedBy.Email,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		FileURL:   t.FileURL,
	}
}
