package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/example/watchhaven/internal/infrastructure/eventbus"
	"github.com/google/uuid"
)

// MockEmitter is a mock implementation of eventbus.Emitter for testing
type MockEmitter struct {
	mu sync.Mutex

	// For tracking calls in tests
	EmitCalls []EmitCall
	EmitErr   error
}

// EmitCall records parameters passed to Emit
type EmitCall struct {
	AggregateID   string
	AggregateType string
	EventType     string
	Data          any
}

// NewMockEmitter creates a new MockEmitter
func NewMockEmitter() *MockEmitter {
	return &MockEmitter{EmitCalls: make([]EmitCall, 0)}
}

// Emit records the call and returns a synthetic event
func (m *MockEmitter) Emit(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*eventbus.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EmitCalls = append(m.EmitCalls, EmitCall{
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          data,
	})

	if m.EmitErr != nil {
		return nil, m.EmitErr
	}

	jsonData, _ := json.Marshal(data)
	return &eventbus.Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
	}, nil
}

// EventTypes returns the emitted event types in order
func (m *MockEmitter) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]string, len(m.EmitCalls))
	for i, c := range m.EmitCalls {
		types[i] = c.EventType
	}
	return types
}

// Reset clears recorded calls
func (m *MockEmitter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmitCalls = m.EmitCalls[:0]
}
