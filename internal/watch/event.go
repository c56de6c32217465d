package watch

import (
	"encoding/json"
	"fmt"
	"io"
)

// Focus lifecycle event types accepted on /v1/event.
const (
	EventFocus  = "focus"
	EventBlur   = "blur"
	EventSwitch = "switch"
)

// Event is one focus lifecycle notification from an editor or hook:
// the window gained focus, lost it, or the displayed note changed.
// Note is only meaningful for switch events; an empty note there means
// no trackable document is showing.
type Event struct {
	Type string `json:"type"`
	Note string `json:"note,omitempty"`
}

// Validate checks the event type.
func (e Event) Validate() error {
	switch e.Type {
	case EventFocus, EventBlur, EventSwitch:
		return nil
	}
	return fmt.Errorf("unknown event type %q", e.Type)
}

// DecodeEvent reads one JSON event from r. Payloads are tiny; anything
// past 64KB is cut off rather than buffered.
func DecodeEvent(r io.Reader) (Event, error) {
	var ev Event
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&ev); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	return ev, nil
}
