// Package notify announces portal events to other services.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/stephanygrace/customer-portal/internal/models"
)

const (
	StreamName     = "PORTAL"
	StreamSubjects = "portal.>"

	// DefaultMessageSubject receives an event for every new booking message.
	DefaultMessageSubject = "portal.messages.created"
)

// MessageCreatedEvent is published after a customer posts a booking message.
type MessageCreatedEvent struct {
	EventID   string    `json:"event_id"`
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessageCreatedEvent builds the event for a stored message.
func NewMessageCreatedEvent(msg *models.Message) MessageCreatedEvent {
	return MessageCreatedEvent{
		EventID:   msg.UUID,
		BookingID: msg.BookingID,
		UserID:    msg.UserID,
		Message:   msg.Message,
		Timestamp: msg.Timestamp,
	}
}

// Publisher delivers portal events.
type Publisher interface {
	PublishMessageCreated(ctx context.Context, event MessageCreatedEvent) error
}

// NopPublisher drops every event. Used when no NATS_URL is configured.
type NopPublisher struct{}

func (NopPublisher) PublishMessageCreated(context.Context, MessageCreatedEvent) error { return nil }

// jetStream is the subset of nats.JetStreamContext used here.
type jetStream interface {
	StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	AddStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// NATSPublisher publishes events to a JetStream stream.
type NATSPublisher struct {
	js      jetStream
	subject string
	conn    *nats.Conn
}

// Connect dials NATS, makes sure the PORTAL stream exists and returns a
// publisher for subject.
func Connect(natsURL, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Timeout(10*time.Second), nats.RetryOnFailedConnect(true), nats.MaxReconnects(-1), nats.ReconnectWait(3*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", natsURL, err)
	}
	log.Printf("[Notify] Connected to NATS at %s", natsURL)

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	p, err := NewNATSPublisher(js, subject)
	if err != nil {
		nc.Close()
		return nil, err
	}
	p.conn = nc
	return p, nil
}

// NewNATSPublisher wraps an existing JetStream context.
func NewNATSPublisher(js jetStream, subject string) (*NATSPublisher, error) {
	if subject == "" {
		subject = DefaultMessageSubject
	}
	if err := ensureStream(js); err != nil {
		return nil, err
	}
	return &NATSPublisher{js: js, subject: subject}, nil
}

func ensureStream(js jetStream) error {
	if _, err := js.StreamInfo(StreamName); err == nil {
		return nil
	}
	log.Printf("[Notify] Stream %s not found, attempting to create it for subject %s...", StreamName, StreamSubjects)
	_, err := js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{StreamSubjects},
		Storage:  nats.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("failed to create NATS stream %s: %w", StreamName, err)
	}
	log.Printf("[Notify] Successfully created NATS stream %s", StreamName)
	return nil
}

func (p *NATSPublisher) PublishMessageCreated(ctx context.Context, event MessageCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal message event: %w", err)
	}
	ack, err := p.js.Publish(p.subject, data, nats.Context(ctx))
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}
	log.Printf("[Notify] Published %s for booking %s (seq: %d)", p.subject, event.BookingID, ack.Sequence)
	return nil
}

// Close drains the underlying connection, if this publisher owns one.
func (p *NATSPublisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		log.Printf("[Notify] Error draining NATS connection: %v", err)
	}
}
