package main

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/api"
	"github.com/spec-kit/ticket-dashboard/internal/auth"
	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/internal/dashboard"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/observability"
	"github.com/spec-kit/ticket-dashboard/internal/store"
	"github.com/spec-kit/ticket-dashboard/internal/tui"
	"github.com/spec-kit/ticket-dashboard/internal/worker"
)

func main() {
	baseURL := pflag.String("base-url", "", "override the ticket API base URL")
	rowsPerPage := pflag.Int("rows", 0, "override rows per page")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *rowsPerPage > 0 {
		cfg.UI.RowsPerPage = *rowsPerPage
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	creds := newCredentialSource(cfg, logger)

	metrics := observability.NewMetrics()
	client := api.NewClient(cfg.API.BaseURL, creds, logger, metrics)
	ticketStore := store.New()
	dispatcher := events.NewInMemoryDispatcher()

	ctrl := dashboard.NewController(dashboard.Dependencies{
		API:        client,
		Store:      ticketStore,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reconciler := worker.NewReconcileWorker(logger)
	ctrl.AttachReconciler(reconciler)
	reconciler.Start(ctx, ctrl)

	model := tui.NewModel(ctrl, ticketStore, cfg.UI.RowsPerPage, sessionLine(ctx, creds), logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	notifier := dashboard.NewNotifier(dispatcher, tui.NewProgramSink(program), logger)
	notifier.RegisterHandlers()

	if _, err := program.Run(); err != nil {
		logger.Fatal("dashboard exited", zap.Error(err))
	}
}

func newCredentialSource(cfg *config.Config, logger *zap.Logger) auth.CredentialSource {
	if cfg.Auth.Source == config.CredentialSourceRedis {
		return auth.NewRedisSource(cfg.Redis, cfg.Auth.RedisKey, logger)
	}
	return auth.EnvSource{Var: cfg.Auth.TokenVar, File: cfg.Auth.TokenFile}
}

// sessionLine describes the stored credential for the header. A
// missing or unreadable token is reported, never fatal: the fetch
// itself surfaces the authoritative error.
func sessionLine(ctx context.Context, creds auth.CredentialSource) string {
	token, err := creds.Token(ctx)
	if err != nil {
		return "no session token stored"
	}
	claims, err := auth.InspectClaims(token)
	if err != nil {
		return "session token present"
	}
	line := "session: " + claims.Subject
	if !claims.ExpiresAt.IsZero() {
		line += fmt.Sprintf(" (expires %s)", claims.ExpiresAt.Format(time.RFC822))
	}
	return line
}
