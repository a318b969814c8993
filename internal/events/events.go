package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the portal.
const (
	TypeAccountCreated   = "account.created"
	TypeAccountsImported = "accounts.imported"
	TypeContentUploaded  = "content.uploaded"
	TypeContentDeleted   = "content.deleted"
)

const (
	eventSource  = "portal-service"
	eventVersion = "1.0"
)

// Event is the envelope published for every domain event.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with a fresh id and timestamp.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher delivers events to the message broker. Publishing is
// best-effort: callers log failures and continue, nothing is retried.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// AccountCreatedEvent is the payload for account.created.
type AccountCreatedEvent struct {
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
	CreatedBy string `json:"created_by"`
}

// AccountsImportedEvent is the payload for accounts.imported.
type AccountsImportedEvent struct {
	SuccessCount int    `json:"success_count"`
	FailureCount int    `json:"failure_count"`
	ImportedBy   string `json:"imported_by"`
}

// ContentEvent is the payload for content.uploaded and content.deleted.
type ContentEvent struct {
	Collection string `json:"collection"`
	ContentID  string `json:"content_id"`
	Title      string `json:"title,omitempty"`
	Actor      string `json:"actor"`
}
