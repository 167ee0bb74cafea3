package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/auth"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/observability"
	apperrors "github.com/spec-kit/ticket-dashboard/pkg/util"
)

const (
	endpointAssigned = "/tickets/my-assigned-tickets"
	endpointTickets  = "/tickets"
)

// Client talks to the remote ticket API. Every call first resolves a
// token from the credential source; an absent credential short-circuits
// before any network attempt. No client-side timeout is applied and an
// in-flight request is never cancelled: ctx is accepted for interface
// symmetry but not propagated to the transport.
type Client struct {
	baseURL string
	creds   auth.CredentialSource
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClient constructs the client.
func NewClient(baseURL string, creds auth.CredentialSource, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		logger:  logger,
		metrics: metrics,
	}
}

// FetchResult is the outcome of a successful assigned-tickets fetch.
type FetchResult struct {
	Tickets []domain.Ticket
	Total   int
}

// Attachment carries an optional file for ticket creation. Accepted
// types (image, PDF, Word, Excel) and the 10MB ceiling are advisory;
// the server enforces them.
type Attachment struct {
	Name    string
	Content []byte
}

// CreateTicketInput is the create-ticket payload.
type CreateTicketInput struct {
	Title       string
	Description string
	Attachment  *Attachment
}

// FetchAssignedTickets retrieves the tickets assigned to the current
// user together with the server-reported total.
func (c *Client) FetchAssignedTickets(ctx context.Context) (*FetchResult, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	agent := fiber.Get(c.baseURL + endpointAssigned)
	c.prepare(agent, token)

	code, body, errs := c.send(agent, endpointAssigned, fiber.MethodGet)
	if len(errs) > 0 {
		return nil, apperrors.NewNetworkError(errs[0])
	}
	if err := c.checkStatus(code, body); err != nil {
		return nil, err
	}

	var resp AssignedTicketsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperrors.NewServerError(code, "malformed ticket list response")
	}

	tickets := make([]domain.Ticket, 0, len(resp.Tickets))
	for _, payload := range resp.Tickets {
		tickets = append(tickets, payload.ToDomain())
	}
	return &FetchResult{Tickets: tickets, Total: resp.Total}, nil
}

// CreateTicket submits a new ticket as a multipart form. The server
// owns the new ticket's identity, so no local record is synthesized
// from this call.
func (c *Client) CreateTicket(ctx context.Context, input CreateTicketInput) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("title", input.Title)
	args.Set("description", input.Description)

	agent := fiber.Post(c.baseURL + endpointTickets)
	c.prepare(agent, token)
	if input.Attachment != nil {
		agent.FileData(&fiber.FormFile{
			Fieldname: "file",
			Name:      input.Attachment.Name,
			Content:   input.Attachment.Content,
		})
	}
	agent.MultipartForm(args)

	code, body, errs := c.send(agent, endpointTickets, fiber.MethodPost)
	if len(errs) > 0 {
		return apperrors.NewNetworkError(errs[0])
	}
	return c.checkStatus(code, body)
}

// UpdateTicketStatus submits a status change. A 2xx transport status
// is accepted as success even when the body omits the success flag;
// the omission is logged because it papers over a known backend
// contract inconsistency.
func (c *Client) UpdateTicketStatus(ctx context.Context, ticketID string, status domain.Status) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	agent := fiber.Put(c.baseURL + endpointTickets + "/" + ticketID)
	c.prepare(agent, token)
	agent.JSON(UpdateStatusRequest{Status: string(status)})

	code, body, errs := c.send(agent, endpointTickets, fiber.MethodPut)
	if len(errs) > 0 {
		return apperrors.NewNetworkError(errs[0])
	}

	var resp MutationResponse
	_ = json.Unmarshal(body, &resp)

	flaggedOK := resp.Success != nil && *resp.Success
	if code >= 200 && code < 300 {
		if resp.Success == nil {
			c.logger.Warn("update response missing success flag, accepting 2xx",
				zap.String("ticket_id", ticketID),
				zap.Int("status_code", code))
		}
		return nil
	}
	if flaggedOK {
		return nil
	}
	return c.checkStatus(code, body)
}

func (c *Client) token(ctx context.Context) (string, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		if !errors.Is(err, auth.ErrNoCredential) {
			c.logger.Warn("credential lookup failed", zap.Error(err))
		}
		return "", apperrors.NewAuthMissing()
	}
	return token, nil
}

func (c *Client) prepare(agent *fiber.Agent, token string) {
	agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	agent.Set("X-Request-ID", uuid.NewString())
}

func (c *Client) send(agent *fiber.Agent, endpoint, method string) (int, []byte, []error) {
	start := time.Now()
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		c.metrics.RecordError(endpoint, method, "network")
		c.logger.Warn("request transport failure",
			zap.String("endpoint", endpoint),
			zap.String("method", method),
			zap.Error(errs[0]))
		return code, body, errs
	}
	c.metrics.RecordRequest(endpoint, method, code, time.Since(start))
	c.logger.Debug("request completed",
		zap.String("endpoint", endpoint),
		zap.String("method", method),
		zap.Int("status_code", code),
		zap.Duration("duration", time.Since(start)))
	return code, body, nil
}

// checkStatus maps a non-success response to the error taxonomy:
// 401 is a session-expiry condition, everything else outside 2xx is a
// server error carrying the body's message when present.
func (c *Client) checkStatus(code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	if code == fiber.StatusUnauthorized {
		return apperrors.NewAuthExpired()
	}
	return apperrors.NewServerError(code, messageFrom(body, code))
}

func messageFrom(body []byte, code int) string {
	var resp MutationResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		return resp.Message
	}
	return fmt.Sprintf("server returned status %d", code)
}
