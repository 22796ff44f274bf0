package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Event types
const (
	ReservationCreated       = "reservation.created"
	ReservationCancelled     = "reservation.cancelled"
	ReservationStatusChanged = "reservation.status_changed"
	ReservationMoved         = "reservation.cottage_changed"
	ReservationsSwept        = "reservation.swept"
	RatingRecorded           = "rating.recorded"
	RatingDeleted            = "rating.deleted"
)

// Event is a change to a reservation announced to listeners
type Event struct {
	Type          string                 `json:"type"`
	ReservationID string                 `json:"reservationId,omitempty"`
	CottageID     string                 `json:"cottageId,omitempty"`
	UserUsername  string                 `json:"userUsername,omitempty"`
	Status        string                 `json:"status,omitempty"`
	At            time.Time              `json:"at"`
	Data          map[string]interface{} `json:"data,omitempty"`
}

// Key partitions events by cottage so one cottage's events stay ordered
func (e Event) Key() string {
	if e.CottageID != "" {
		return e.CottageID
	}
	return e.Type
}

type Service interface {
	Publish(ctx context.Context, event Event) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

// Publish broadcasts the event as JSON to every connected websocket session
func (s *MelodyService) Publish(ctx context.Context, event Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.m.Broadcast(payload)
}

// Multi fans an event out to several services and joins their errors
type Multi []Service

func (m Multi) Publish(ctx context.Context, event Event) error {
	var failed []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Publish(ctx, event); err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("publish %s: %v", event.Type, failed)
	}
	return nil
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory. Used in tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.Events = append(r.Events, event)
	return nil
}

// Types returns the type of every recorded event in order
func (r *Recorder) Types() []string {
	types := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}

type EventBuilder struct {
	event Event
}

func NewEventBuilder(eventType string) *EventBuilder {
	return &EventBuilder{event: Event{Type: eventType}}
}

func (b *EventBuilder) ForReservation(id, cottageID, username, status string) *EventBuilder {
	b.event.ReservationID = id
	b.event.CottageID = cottageID
	b.event.UserUsername = username
	b.event.Status = status
	return b
}

func (b *EventBuilder) With(key string, value interface{}) *EventBuilder {
	if b.event.Data == nil {
		b.event.Data = make(map[string]interface{})
	}
	b.event.Data[key] = value
	return b
}

func (b *EventBuilder) Build(at time.Time) Event {
	b.event.At = at
	return b.event
}
