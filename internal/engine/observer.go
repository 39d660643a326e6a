package engine

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the storage operations observers can subscribe to.
type EventType string

const (
	EventTableCreate EventType = "table_create"
	EventTableLoad   EventType = "table_load"
	EventInsert      EventType = "insert"
	EventSelect      EventType = "select"
	EventUpdate      EventType = "update"
	EventDelete      EventType = "delete"
	EventJoin        EventType = "join"
)

// Event describes one storage operation against a table.
type Event struct {
	Type      EventType   // Type of event
	OpID      string      // Operation ID for tracing
	Table     string      // Table the operation targeted
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Operation-specific data (e.g. offset, row counts)
}

// Observer receives events for storage operations. Observers are held by
// the owning table or database with an explicit lifecycle; there is no
// ambient global sink.
type Observer interface {
	OnEvent(event Event)
}

// NewOpID returns a unique identifier used to correlate the events of a
// single operation.
func NewOpID() string {
	return uuid.New().String()
}
