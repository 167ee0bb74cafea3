package devserver

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/api"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// Server is an in-process stand-in for the remote ticket API, exposing
// the three endpoints the dashboard consumes. It backs cmd/stubserver
// for local development and the API client tests.
type Server struct {
	app    *fiber.App
	tokens *TokenManager
	logger *zap.Logger

	// omitSuccessFlag mirrors the production backend quirk where the
	// success flag is sometimes absent on successful update responses.
	omitSuccessFlag bool

	mu      sync.Mutex
	tickets []api.TicketPayload
}

// Options configures the stub.
type Options struct {
	JWTSecret             string
	TokenTTLMinutes       int
	Seed                  []domain.Ticket
	OmitUpdateSuccessFlag bool
}

// New builds the stub with its routes registered.
func New(opts Options, logger *zap.Logger) *Server {
	s := &Server{
		app:             fiber.New(fiber.Config{DisableStartupMessage: true}),
		tokens:          NewTokenManager(opts.JWTSecret, opts.TokenTTLMinutes),
		logger:          logger,
		omitSuccessFlag: opts.OmitUpdateSuccessFlag,
	}
	for _, ticket := range opts.Seed {
		s.tickets = append(s.tickets, api.FromDomain(ticket))
	}

	s.app.Get("/tickets/my-assigned-tickets", s.requireAuth, s.listAssigned)
	s.app.Post("/tickets", s.requireAuth, s.createTicket)
	s.app.Put("/tickets/:id", s.requireAuth, s.updateStatus)
	return s
}

// MintToken issues a bearer token the stub will accept.
func (s *Server) MintToken(subjectID, email string) (string, time.Time, error) {
	return s.tokens.MintToken(subjectID, email)
}

// Listen serves on the given address, blocking.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Serve serves on an existing listener, blocking. Tests use this to
// bind an ephemeral port.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Tickets returns a copy of the stub's current collection.
func (s *Server) Tickets() []api.TicketPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.TicketPayload(nil), s.tickets...)
}

// requireAuth enforces bearer authentication.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return unauthorized(c, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return unauthorized(c, "invalid authorization header")
	}

	if _, err := s.tokens.Parse(parts[1]); err != nil {
		return unauthorized(c, "invalid or expired token")
	}
	return c.Next()
}

// listAssigned GET /tickets/my-assigned-tickets.
func (s *Server) listAssigned(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(api.AssignedTicketsResponse{
		Success: true,
		Tickets: append([]api.TicketPayload(nil), s.tickets...),
		Total:   len(s.tickets),
	})
}

// createTicket POST /tickets (multipart).
func (s *Server) createTicket(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	if title == "" || description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "title and description are required",
		})
	}

	fileURL := ""
	if file, err := c.FormFile("file"); err == nil && file != nil {
		fileURL = "/uploads/" + file.Filename
	}

	now := time.Now().UTC()
	ticket := api.TicketPayload{
		ID:          uuid.NewString(),
		TicketID:    generateTicketKey(),
		Title:       title,
		Description: description,
		Status:      string(domain.StatusOpen),
		Priority:    string(domain.PriorityMedium),
		CreatedBy: api.UserPayload{
			FirstName: "Dev",
			LastName:  "User",
			Email:     "dev@example.com",
		},
		CreatedAt: now,
		UpdatedAt: now,
		FileURL:   fileURL,
	}

	s.mu.Lock()
	s.tickets = append(s.tickets, ticket)
	s.mu.Unlock()

	s.logger.Info("stub ticket created", zap.String("ticket_id", ticket.TicketID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "ticket created",
	})
}

// updateStatus PUT /tickets/:id.
func (s *Server) updateStatus(c *fiber.Ctx) error {
	var req api.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid payload",
		})
	}
	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "unknown status",
		})
	}

	id := c.Params("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID == id || s.tickets[i].TicketID == id {
			s.tickets[i].Status = string(status)
			s.tickets[i].UpdatedAt = time.Now().UTC()
			response := fiber.Map{"message": "status updated"}
			if !s.omitSuccessFlag {
				response["success"] = true
			}
			return c.JSON(response)
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": "ticket not found",
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func generateTicketKey() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
