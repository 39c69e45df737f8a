// Package session persists wizard drafts so an interrupted flow can be
// restored. Drafts are stored as events in JetStream and reduced on load.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/secconsole/internal/logger"
	"github.com/mark3labs/secconsole/internal/nats"
	"github.com/mark3labs/secconsole/internal/wizard"
	"github.com/nats-io/nats.go/jetstream"
)

// Draft actions
const (
	ActionSave    = "save"
	ActionDiscard = "discard"
)

// Event is one entry in the append-only draft log.
type Event struct {
	ID        string          `json:"id"`        // NATS message sequence ID
	Timestamp time.Time       `json:"timestamp"` // When the event occurred
	Wizard    string          `json:"wizard"`    // Wizard instance ID
	Type      string          `json:"type"`      // Event type
	Action    string          `json:"action"`    // save or discard
	Meta      json.RawMessage `json:"meta"`      // Action-specific payload
}

// Draft is the persisted part of a wizard: everything needed to rehydrate
// shared data before the first render.
type Draft struct {
	Wizard   string          `json:"wizard"`
	Index    int             `json:"index"`
	Data     wizard.Data     `json:"data"`
	Statuses []wizard.Status `json:"statuses"`
	SavedAt  time.Time       `json:"saved_at"`
}

// DraftFromSnapshot captures a controller snapshot.
func DraftFromSnapshot(wizardID string, snap wizard.Snapshot) Draft {
	return Draft{
		Wizard:   wizardID,
		Index:    snap.Index,
		Data:     snap.Data.Clone(),
		Statuses: append([]wizard.Status(nil), snap.Statuses...),
	}
}

// Store manages drafts through JetStream event sourcing.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewStore creates a new Store instance with the given JetStream context and stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{
		js:     js,
		stream: stream,
	}
}

// subjectToken turns a wizard ID into a NATS-safe subject token.
func subjectToken(wizardID string) (string, error) {
	token := slug.Make(wizardID)
	if token == "" {
		return "", fmt.Errorf("invalid wizard id %q", wizardID)
	}
	return token, nil
}

// PublishEvent appends an event to the draft log.
func (s *Store) PublishEvent(ctx context.Context, event Event) (*jetstream.PubAck, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Type == "" {
		event.Type = nats.EventTypeDraft
	}

	token, err := subjectToken(event.Wizard)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(token, event.Type)
	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	logger.Debug("Draft event published: wizard=%s action=%s seq=%d", event.Wizard, event.Action, ack.Sequence)
	return ack, nil
}

// SaveDraft records the latest state of a wizard.
func (s *Store) SaveDraft(ctx context.Context, draft Draft) error {
	if draft.SavedAt.IsZero() {
		draft.SavedAt = time.Now()
	}
	meta, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	_, err = s.PublishEvent(ctx, Event{
		Wizard: draft.Wizard,
		Action: ActionSave,
		Meta:   meta,
	})
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// DiscardDraft drops the stored draft of a wizard, typically after it
// completes or is reset.
func (s *Store) DiscardDraft(ctx context.Context, wizardID string) error {
	_, err := s.PublishEvent(ctx, Event{
		Wizard: wizardID,
		Action: ActionDiscard,
	})
	if err != nil {
		return fmt.Errorf("failed to discard draft: %w", err)
	}
	return nil
}

// State is the reduced draft log of one wizard.
type State struct {
	Wizard string
	Draft  *Draft
	Saves  int // Number of save events applied
}

// Apply applies an event to the state, implementing the reduce pattern.
func (st *State) Apply(event Event) error {
	switch event.Action {
	case ActionSave:
		var d Draft
		if err := json.Unmarshal(event.Meta, &d); err != nil {
			return fmt.Errorf("decoding draft: %w", err)
		}
		if d.Data == nil {
			d.Data = wizard.Data{}
		}
		st.Draft = &d
		st.Saves++
	case ActionDiscard:
		st.Draft = nil
	}
	return nil
}

// ErrNoDraft is returned by LoadDraft when nothing is stored for a wizard.
var ErrNoDraft = errors.New("no draft stored")

// LoadDraft replays the draft log of a wizard and returns the latest draft.
func (s *Store) LoadDraft(ctx context.Context, wizardID string) (*Draft, error) {
	state, err := s.LoadState(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	if state.Draft == nil {
		return nil, ErrNoDraft
	}
	return state.Draft, nil
}

// LoadState reads every event for a wizard from the stream and reduces it.
func (s *Store) LoadState(ctx context.Context, wizardID string) (*State, error) {
	token, err := subjectToken(wizardID)
	if err != nil {
		return nil, err
	}

	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: nats.SubjectForWizard(token),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	state := &State{Wizard: wizardID}

	const batchSize = 500
	malformed := 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				malformed++
				_ = msg.Ack()
				continue
			}
			if event.ID == "" {
				if meta, err := msg.Metadata(); err == nil {
					event.ID = fmt.Sprintf("%d", meta.Sequence.Stream)
				}
			}
			if err := state.Apply(event); err != nil {
				malformed++
			}
			_ = msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	if malformed > 0 {
		logger.Warn("Skipped %d malformed draft events for %s", malformed, wizardID)
	}
	return state, nil
}

// AutoSave stores a draft after every change of c until the returned stop
// function is called. Save failures are logged, not returned, since the UI
// keeps working without persistence.
func (s *Store) AutoSave(ctx context.Context, wizardID string, c *wizard.Controller) (stop func()) {
	return c.Subscribe(func(snap wizard.Snapshot) {
		if err := s.SaveDraft(ctx, DraftFromSnapshot(wizardID, snap)); err != nil {
			logger.Warn("Draft autosave for %s failed: %v", wizardID, err)
		}
	})
}
