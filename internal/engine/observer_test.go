package engine

import (
	"testing"

	"gotest.tools/assert"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func TestAddObserver(t *testing.T) {
	table := newUsersTable(t)
	observer := &MockObserver{}

	table.AddObserver(observer)

	assert.Equal(t, len(table.observers), 1)
}

func TestRemoveObserver(t *testing.T) {
	table := newUsersTable(t)
	observer := &MockObserver{}

	table.AddObserver(observer)
	table.RemoveObserver(observer)

	assert.Equal(t, len(table.observers), 0)
}

func TestNotifyWithNoObservers(t *testing.T) {
	table := newUsersTable(t)

	// Should not panic
	_, err := table.Insert(Row{"id": 1, "username": "alice"})
	assert.NilError(t, err)
}

func TestOperationsEmitEvents(t *testing.T) {
	table := newUsersTable(t)
	observer := &MockObserver{}
	table.AddObserver(observer)

	_, err := table.Insert(Row{"id": 1, "username": "alice"})
	assert.NilError(t, err)
	table.Select(nil, 0)
	_, err = table.Update(Row{"id": 1}, Row{"email": "a@x.com"})
	assert.NilError(t, err)
	_, err = table.Delete(Row{"id": 1})
	assert.NilError(t, err)

	assert.Equal(t, len(observer.Events), 4)
	assert.Equal(t, observer.Events[0].Type, EventInsert)
	assert.Equal(t, observer.Events[1].Type, EventSelect)
	assert.Equal(t, observer.Events[2].Type, EventUpdate)
	assert.Equal(t, observer.Events[3].Type, EventDelete)

	for _, event := range observer.Events {
		assert.Equal(t, event.Table, "users")
		assert.Assert(t, event.OpID != "")
		assert.Assert(t, !event.Timestamp.IsZero())
	}
}

func TestFailedOperationsEmitNoEvents(t *testing.T) {
	table := newUsersTable(t)
	observer := &MockObserver{}
	table.AddObserver(observer)

	_, err := table.Insert(Row{"ghost": 1})
	assert.Assert(t, IsUnknownColumn(err))

	assert.Equal(t, len(observer.Events), 0)
}

func TestMultipleObservers(t *testing.T) {
	table := newUsersTable(t)
	observer1 := &MockObserver{}
	observer2 := &MockObserver{}

	table.AddObserver(observer1)
	table.AddObserver(observer2)

	_, err := table.Insert(Row{"id": 1, "username": "alice"})
	assert.NilError(t, err)

	assert.Equal(t, len(observer1.Events), 1)
	assert.Equal(t, len(observer2.Events), 1)
}
