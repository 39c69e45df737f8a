package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// Subject pattern constants and helpers
const (
	streamName = "console_events"

	// Event types
	EventTypeDraft = "draft"
)

// SubjectForWizard returns the wildcard subject pattern for all events of one
// wizard instance.
// Example: "console.onboard-okta.>"
func SubjectForWizard(wizardID string) string {
	return fmt.Sprintf("console.%s.>", wizardID)
}

// SubjectForEvent returns the specific subject for an event type of a wizard.
// Example: "console.onboard-okta.draft"
func SubjectForEvent(wizardID, eventType string) string {
	return fmt.Sprintf("console.%s.%s", wizardID, eventType)
}

// SetupStream creates or updates the JetStream stream for console events.
// Drafts are short-lived, so the stream keeps a week of history.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"console.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	})
}
