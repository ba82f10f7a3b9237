package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/talent-intake/internal/core/events"
	"github.com/frahmantamala/talent-intake/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Inspect the domain event bus: publish test events through the audit handlers`,
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [event-type]",
	Short:     "Publish a test event",
	Long:      `Publish a document.extracted or user.registered event through the same audit wiring the server uses`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{events.EventTypeDocumentExtracted, events.EventTypeUserRegistered},
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(cmd.Context(), args[0])
	},
}

var (
	eventKind     string
	eventRecordID int64
	eventUserID   int64
	eventLocation string
)

func publishTestEvent(ctx context.Context, eventType string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lg := logger.LoggerWrapper()

	event, err := testEvent(eventType)
	if err != nil {
		return err
	}

	bus := newEventBus(lg)
	lg.Info("publishing test event", "event_type", event.EventType(), "event_id", event.EventID())

	// sync so the audit line is written before the process exits
	if err := bus.PublishSync(ctx, event); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	lg.Info("test event published successfully")
	return nil
}

func testEvent(eventType string) (events.Event, error) {
	switch eventType {
	case events.EventTypeDocumentExtracted:
		return events.NewDocumentExtractedEvent(eventKind, eventRecordID, eventLocation, eventUserID), nil
	case events.EventTypeUserRegistered:
		return events.NewUserRegisteredEvent(eventUserID), nil
	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
}

func init() {
	publishEventCmd.Flags().StringVar(&eventKind, "kind", events.DocumentKindResume, "document kind for document.extracted")
	publishEventCmd.Flags().Int64Var(&eventRecordID, "record-id", 1, "record id for document.extracted")
	publishEventCmd.Flags().Int64Var(&eventUserID, "user-id", 1, "user id carried by the event")
	publishEventCmd.Flags().StringVar(&eventLocation, "location", "resume_uploads/test.pdf", "stored file location for document.extracted")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
