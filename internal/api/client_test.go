package api_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/api"
	"github.com/spec-kit/ticket-dashboard/internal/auth"
	"github.com/spec-kit/ticket-dashboard/internal/devserver"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/observability"
	apperrors "github.com/spec-kit/ticket-dashboard/pkg/util"
)

func startStub(t *testing.T, opts devserver.Options) (*devserver.Server, string) {
	t.Helper()
	if opts.JWTSecret == "" {
		opts.JWTSecret = "test-secret"
	}
	srv := devserver.New(opts, zap.NewNop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	addr := ln.Addr().String()
	waitReachable(t, addr)
	return srv, "http://" + addr
}

func waitReachable(t *testing.T, addr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("stub server never became reachable")
}

func newTestClient(t *testing.T, baseURL string, creds auth.CredentialSource) *api.Client {
	t.Helper()
	return api.NewClient(baseURL, creds, zap.NewNop(), observability.NewMetrics())
}

func mintToken(t *testing.T, srv *devserver.Server) string {
	t.Helper()
	token, _, err := srv.MintToken("user-1", "agent@example.com")
	require.NoError(t, err)
	return token
}

func seedTicket(id, code, title string, status domain.Status) domain.Ticket {
	return domain.Ticket{
		ID:       id,
		TicketID: code,
		Title:    title,
		Status:   status,
		Priority: domain.PriorityHigh,
		CreatedBy: domain.UserRef{
			FirstName: "Jamie",
			LastName:  "Ortiz",
			Email:     "jamie@example.com",
		},
		CreatedAt: time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestFetchAssignedTicketsMapsPayload(t *testing.T) {
	srv, baseURL := startStub(t, devserver.Options{Seed: []domain.Ticket{
		seedTicket("id-1", "TCK-001", "Printer jam", domain.StatusOpen),
		seedTicket("id-2", "TCK-002", "VPN down", domain.StatusPending),
	}})
	client := newTestClient(t, baseURL, auth.StaticSource(mintToken(t, srv)))

	result, err := client.FetchAssignedTickets(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Tickets, 2)
	assert.Equal(t, "TCK-001", result.Tickets[0].TicketID)
	assert.Equal(t, domain.StatusOpen, result.Tickets[0].Status)
	assert.Equal(t, domain.PriorityHigh, result.Tickets[0].Priority)
	assert.Equal(t, "Jamie Ortiz", result.Tickets[0].CreatedBy.FullName())
}

func TestMissingCredentialShortCircuitsBeforeNetwork(t *testing.T) {
	// Unroutable base URL: reaching the network at all would surface a
	// network error instead of the auth error we expect.
	client := newTestClient(t, "http://127.0.0.1:1", auth.StaticSource(""))

	_, err := client.FetchAssignedTickets(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthMissing(err))

	err = client.CreateTicket(context.Background(), api.CreateTicketInput{Title: "a", Description: "b"})
	assert.True(t, apperrors.IsAuthMissing(err))

	err = client.UpdateTicketStatus(context.Background(), "id-1", domain.StatusClosed)
	assert.True(t, apperrors.IsAuthMissing(err))
}

func TestRejectedTokenMapsToExpiredSession(t *testing.T) {
	_, baseURL := startStub(t, devserver.Options{})
	client := newTestClient(t, baseURL, auth.StaticSource("not-a-valid-token"))

	_, err := client.FetchAssignedTickets(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsAuthExpired(err))
}

func TestCreateTicketSubmitsMultipartWithAttachment(t *testing.T) {
	srv, baseURL := startStub(t, devserver.Options{})
	client := newTestClient(t, baseURL, auth.StaticSource(mintToken(t, srv)))

	err := client.CreateTicket(context.Background(), api.CreateTicketInput{
		Title:       "Broken scanner",
		Description: "Third floor scanner rejects every badge",
		Attachment: &api.Attachment{
			Name:    "badge-log.pdf",
			Content: []byte("%PDF-1.4 fake"),
		},
	})

	require.NoError(t, err)
	tickets := srv.Tickets()
	require.Len(t, tickets, 1)
	assert.Equal(t, "Broken scanner", tickets[0].Title)
	assert.Equal(t, "/uploads/badge-log.pdf", tickets[0].FileURL)
	assert.Equal(t, string(domain.StatusOpen), tickets[0].Status)
}

func TestCreateTicketValidationErrorCarriesServerMessage(t *testing.T) {
	srv, baseURL := startStub(t, devserver.Options{})
	client := newTestClient(t, baseURL, auth.StaticSource(mintToken(t, srv)))

	err := client.CreateTicket(context.Background(), api.CreateTicketInput{Title: "only a title"})

	require.Error(t, err)
	var serverErr *apperrors.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, 400, serverErr.StatusCode)
	assert.Equal(t, "title and description are required", serverErr.Message)
	assert.Empty(t, srv.Tickets())
}

func TestUpdateTicketStatusByEitherIdentifier(t *testing.T) {
	srv, baseURL := startStub(t, devserver.Options{Seed: []domain.Ticket{
		seedTicket("id-1", "TCK-001", "Printer jam", domain.StatusOpen),
	}})
	client := newTestClient(t, baseURL, auth.StaticSource(mintToken(t, srv)))

	require.NoError(t, client.UpdateTicketStatus(context.Background(), "id-1", domain.StatusSolved))
	assert.Equal(t, string(domain.StatusSolved), srv.Tickets()[0].Status)

	require.NoError(t, client.UpdateTicketStatus(context.Background(), "TCK-001", domain.StatusClosed))
	assert.Equal(t, string(domain.StatusClosed), srv.Tickets()[0].Status)
}

func TestUpdateAcceptedWhenSuccessFlagOmitted(t *testing.T) {
	srv, baseURL := startStub(t, devserver.Options{
		Seed:                  []domain.Ticket{seedTicket("id-1", "TCK-001", "Printer jam", domain.StatusOpen)},
		OmitUpdateSuccessFlag: true,
	})
	client := newTestClient(t, baseURL, auth.StaticSource(mintToken(t, srv)))

	err := client.UpdateTicketStatus(context.Background(), "id-1", domain.StatusBreached)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusBreached), srv.Tickets()[0].Status)
}

func TestUpdateUnknownTicketIsServerError(t *testing.T) {
	srv, baseURL := startStub(t, devserver.Options{})
	client := newTestClient(t, baseURL, auth.StaticSource(mintToken(t, srv)))

	err := client.UpdateTicketStatus(context.Background(), "no-such-id", domain.StatusClosed)

	require.Error(t, err)
	var serverErr *apperrors.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, 404, serverErr.StatusCode)
	assert.Equal(t, "ticket not found", serverErr.Message)
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := newTestClient(t, "http://"+addr, auth.StaticSource("some-token"))

	_, err = client.FetchAssignedTickets(context.Background())

	require.Error(t, err)
	var netErr *apperrors.NetworkError
	assert.ErrorAs(t, err, &netErr)
}
