package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeDocumentExtracted = "document.extracted"
	EventTypeUserRegistered    = "user.registered"
)

const (
	DocumentKindJobDescription = "job_description"
	DocumentKindResume         = "resume"
)

// DocumentExtractedEvent is published once an extracted row is stored.
type DocumentExtractedEvent struct {
	BaseEvent
	Kind     string `json:"kind"`
	RecordID int64  `json:"record_id"`
	Location string `json:"location"`
	UserID   int64  `json:"user_id"`
}

func NewDocumentExtractedEvent(kind string, recordID int64, location string, userID int64) *DocumentExtractedEvent {
	return &DocumentExtractedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDocumentExtracted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"kind":      kind,
				"record_id": recordID,
				"location":  location,
				"user_id":   userID,
			},
		},
		Kind:     kind,
		RecordID: recordID,
		Location: location,
		UserID:   userID,
	}
}

type UserRegisteredEvent struct {
	BaseEvent
	UserID int64 `json:"user_id"`
}

func NewUserRegisteredEvent(userID int64) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserRegistered,
			Timestamp: time.Now(),
			Data:      map[string]interface{}{"user_id": userID},
		},
		UserID: userID,
	}
}

// AuditLogger writes every event it receives as one structured log line.
func AuditLogger(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"data", event.Payload(),
		)
		return nil
	}
}
