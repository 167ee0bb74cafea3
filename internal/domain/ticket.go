package domain

import (
	"strings"
	"time"
)

// Status enumerates lifecycle states for tickets. Breached marks an
// SLA violation. No transition graph is enforced client-side: the
// server accepts any status after any other.
type Status string

const (
	StatusOpen     Status = "Open"
	StatusPending  Status = "Pending"
	StatusSolved   Status = "Solved"
	StatusClosed   Status = "Closed"
	StatusBreached Status = "Breached"
)

// Statuses lists every known status.
var Statuses = []Status{
	StatusOpen,
	StatusPending,
	StatusSolved,
	StatusClosed,
	StatusBreached,
}

// Known reports whether the status is one of the enumerated values.
func (s Status) Known() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus resolves a wire value to a Status, case-insensitively.
func ParseStatus(value string) (Status, bool) {
	for _, known := range Statuses {
		if strings.EqualFold(value, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Priority enumerates SLA urgency.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Priorities lists every known priority.
var Priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

// Known reports whether the priority is one of the enumerated values.
func (p Priority) Known() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePriority resolves a wire value to a Priority, case-insensitively.
func ParsePriority(value string) (Priority, bool) {
	for _, known := range Priorities {
		if strings.EqualFold(value, string(known)) {
			return known, true
		}
	}
	return "", false
}

// UserRef identifies the person a ticket was created by.
type UserRef struct {
	FirstName string
	LastName  string
	Email     string
}

// FullName joins the non-empty name parts.
func (u UserRef) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Ticket is the client-side view of a support request. The server owns
// every field; the client only changes Status (and UpdatedAt) through
// an explicit update call.
type Ticket struct {
	ID          string
	TicketID    string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	CreatedBy   UserRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FileURL     string
}
