package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/restaurant-management/internal/core/events"
	"github.com/frahmantamala/restaurant-management/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers such as the audit event consumer.`,
}

var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start the audit event worker",
	Long:  `Consume permission and company audit events from the event bus and log them.`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

func startEventWorker() {
	if _, err := loadConfig("."); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(logger)
	RegisterAuditSubscribers(eventBus, logger)

	logger.Info("audit event worker started. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("received signal, shutting down audit event worker", "signal", sig)
}

// RegisterAuditSubscribers attaches the audit-log handlers to the bus. Used
// both by the standalone worker and in-process by the HTTP server.
func RegisterAuditSubscribers(eventBus *events.EventBus, lg *slog.Logger) {
	handler := func(ctx context.Context, event events.Event) error {
		lg.Info("audit event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	eventBus.Subscribe(events.EventRolePermissionUpdated, handler)
	eventBus.Subscribe(events.EventCompanyUpdated, handler)
}

func init() {
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
