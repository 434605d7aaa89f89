package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Event represents a domain event
type Event struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Publisher delivers an encoded event to the outside world
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Emitter is what domain stores depend on to announce state changes
type Emitter interface {
	Emit(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error)
}

// Bus wraps domain payloads into Events and hands them to a Publisher
type Bus struct {
	publisher Publisher
}

func NewBus(publisher Publisher) *Bus {
	return &Bus{publisher: publisher}
}

// Emit builds the envelope and publishes it keyed by aggregate id
func (b *Bus) Emit(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	event := Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
	}

	if b.publisher != nil {
		if err := b.publisher.Publish(ctx, aggregateID, event); err != nil {
			return &event, err
		}
	}

	return &event, nil
}

// LogPublisher only logs events; used when no broker is configured
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, key string, event any) error {
	if e, ok := event.(Event); ok {
		log.WithFields(log.Fields{
			"key":        key,
			"event_type": e.EventType,
			"aggregate":  e.AggregateType,
		}).Debug("event emitted")
		return nil
	}
	log.WithField("key", key).Debug("event emitted")
	return nil
}

// Decode unmarshals a published event envelope
func Decode(value []byte) (Event, error) {
	var event Event
	err := json.Unmarshal(value, &event)
	return event, err
}
