package types

import (
	"time"

	"github.com/tributary-io/tributary/constants"
)

type Record map[string]any

// Event is a single unit of pipeline data: a mutable bag of named fields.
// Processors mutate events in place; the surrounding batch owns ordering.
//
// An Event is not safe for concurrent mutation. The pipeline guarantees a
// single worker touches an event at a time, so no locking happens here.
type Event struct {
	data Record
}

func NewEvent(data Record) *Event {
	if data == nil {
		data = Record{}
	}
	return &Event{data: data}
}

// CreateIngestedEvent stamps the pipeline bookkeeping fields on top of the
// raw payload. Processors never touch these fields.
func CreateIngestedEvent(eventID string, data Record) *Event {
	event := NewEvent(data)
	event.Put(constants.EventID, eventID)
	event.Put(constants.EventTimestamp, time.Now().UTC())
	return event
}

func (e *Event) Get(key string) (any, bool) {
	value, found := e.data[key]
	return value, found
}

// GetString returns the field value only when it is present and holds a
// string. A present field of any other type reports false, same as absence;
// callers that care about the distinction use Contains.
func (e *Event) GetString(key string) (string, bool) {
	value, found := e.data[key]
	if !found {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

func (e *Event) Put(key string, value any) {
	e.data[key] = value
}

func (e *Event) Delete(key string) {
	delete(e.data, key)
}

func (e *Event) Contains(key string) bool {
	_, found := e.data[key]
	return found
}

func (e *Event) Len() int {
	return len(e.data)
}

// Data exposes the backing record for serialization at the pipeline edges.
func (e *Event) Data() Record {
	return e.data
}

// Clone is a shallow copy; field values are shared with the original.
func (e *Event) Clone() *Event {
	copied := make(Record, len(e.data))
	for key, value := range e.data {
		copied[key] = value
	}
	return &Event{data: copied}
}
