package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/internal/devserver"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/observability"
)

func main() {
	addr := pflag.String("addr", "127.0.0.1:8080", "listen address")
	secret := pflag.String("secret", "dev-secret", "JWT signing secret")
	ttl := pflag.Int("ttl", 60, "token TTL in minutes")
	seed := pflag.Int("seed", 12, "number of seeded tickets")
	omitFlag := pflag.Bool("omit-success-flag", false, "mirror the backend quirk of omitting the success flag on update responses")
	pflag.Parse()

	logger, err := observability.NewLogger(config.LoggerConfig{Level: "info"})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	server := devserver.New(devserver.Options{
		JWTSecret:             *secret,
		TokenTTLMinutes:       *ttl,
		Seed:                  seedTickets(*seed),
		OmitUpdateSuccessFlag: *omitFlag,
	}, logger)

	token, expires, err := server.MintToken("dev-user", "dev@example.com")
	if err != nil {
		logger.Fatal("failed to mint dev token", zap.Error(err))
	}
	fmt.Printf("export TICKET_SESSION_TOKEN=%s\n", token)
	fmt.Printf("# token expires %s\n", expires.Format(time.RFC822))

	go func() {
		if err := server.Listen(*addr); err != nil {
			logger.Fatal("stub server listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = server.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

// seedTickets builds a deterministic-ish spread of tickets across
// statuses, priorities, and the last six months.
func seedTickets(n int) []domain.Ticket {
	titles := []string{
		"Cannot log in from mobile app",
		"Invoice export renders blank PDF",
		"Dashboard widgets fail to refresh",
		"Password reset email never arrives",
		"Search returns stale results",
		"Upload fails for files over 2MB",
	}
	tickets := make([]domain.Ticket, 0, n)
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		created := now.AddDate(0, -(i % 6), -(i % 17))
		tickets = append(tickets, domain.Ticket{
			ID:          fmt.Sprintf("seed-%03d", i+1),
			TicketID:    fmt.Sprintf("TCK-SEED%04d", i+1),
			Title:       titles[i%len(titles)],
			Description: "Seeded ticket for local development.",
			Status:      domain.Statuses[i%len(domain.Statuses)],
			Priority:    domain.Priorities[i%len(domain.Priorities)],
			CreatedBy: domain.UserRef{
				FirstName: "Dev",
				LastName:  "User",
				Email:     "dev@example.com",
			},
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	return tickets
}
