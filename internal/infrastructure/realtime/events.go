package realtime

import (
	"encoding/json"
	"errors"
)

// Protocol event names. Inbound events come from clients; outbound events
// are pushed by the server.
const (
	EventJoin       = "chat:join"
	EventLeave      = "chat:leave"
	EventMessage    = "chat:message"
	EventTyping     = "chat:typing"
	EventTypingStop = "chat:typing:stop"

	EventMessageNew      = "chat:message:new"
	EventNotificationNew = "notification:new"
	EventUserOnline      = "user:online"
	EventUserOffline     = "user:offline"
	EventError           = "error"
)

// Event is the wire envelope for every frame exchanged over a connection.
// The client multiplexes many logical event streams over one socket, so each
// frame names its event.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// EncodeEvent marshals an outbound event frame.
func EncodeEvent(name string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Name: name, Data: raw})
}

// Bind unmarshals the event's raw data into v.
func (e Event) Bind(v any) error {
	if len(e.Data) == 0 {
		return errors.New("realtime: event has no data")
	}
	return json.Unmarshal(e.Data, v)
}

// DecodeEvent parses an inbound frame, leaving Data raw for the per-event
// handler to interpret.
func DecodeEvent(payload []byte) (Event, error) {
	var ev Event
	err := json.Unmarshal(payload, &ev)
	return ev, err
}
