package sim

import (
	"maps"
	"math"
)

type EventType string

const (
	EventRouteSelected EventType = "route_selected"
	EventStart         EventType = "start"
	EventStop          EventType = "stop"
	EventCollision     EventType = "collision"
	EventEnteredZone   EventType = "entered_zone"
	EventExitedZone    EventType = "exit_zone"
	EventTarget        EventType = "target"
	EventComplete      EventType = "complete"
	EventIncomplete    EventType = "incomplete"
	EventInterception  EventType = "interception"
	EventSack          EventType = "sack"
)

const (
	SackPressure = "pressure"
	SackTimer    = "timer"
)

type Event struct {
	T       float64        `json:"t"`
	Type    EventType      `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Str reads a string payload field.
func (e Event) Str(key string) string {
	s, _ := e.Payload[key].(string)
	return s
}

// Num reads a numeric payload field; JSON-decoded logs carry float64.
func (e Event) Num(key string) float64 {
	switch v := e.Payload[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// EventLog is append-only.
type EventLog struct {
	events []Event
}

func (l *EventLog) Append(t float64, typ EventType, payload map[string]any) Event {
	ev := Event{T: roundTime(t), Type: typ, Payload: payload}
	l.events = append(l.events, ev)
	return ev
}

func (l *EventLog) Len() int { return len(l.events) }

// Events returns a copy of the log, payloads included.
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	for i, ev := range l.events {
		ev.Payload = maps.Clone(ev.Payload)
		out[i] = ev
	}
	return out
}

func (l *EventLog) view() []Event { return l.events }

func roundTime(t float64) float64 { return math.Round(t*100) / 100 }
