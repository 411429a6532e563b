// Package eventlog keeps an in-memory, append-only record of what happened
// to the kettle during a session.
package eventlog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"controlling_kettle"
)

// Event types recorded by the control loop.
const (
	TypeFill  = "FILL"
	TypeStart = "START"
	TypeStop  = "STOP"
	TypeReady = "READY"
	TypePour  = "POUR"
	TypeError = "ERROR"
)

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// Filter selects events by time window and/or type. Zero fields match
// everything.
type Filter struct {
	From time.Time
	To   time.Time
	Type string
}

// Log is an append-only event record. Like the kettle it belongs to, it is
// owned by a single controller and is not safe for concurrent use.
type Log struct {
	events []controlling_kettle.KettleEvent
	now    func() time.Time
}

func New() *Log {
	return &Log{now: time.Now}
}

// Append records an event, assigning its ID and timestamp, and returns it.
func (l *Log) Append(eventType, description string, metadata any) controlling_kettle.KettleEvent {
	ev := controlling_kettle.KettleEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  l.now().UTC(),
		Type:        eventType,
		Description: description,
		Metadata:    metadata,
	}
	l.events = append(l.events, ev)
	return ev
}

// List returns the recorded events matching f, in append order.
func (l *Log) List(f Filter) ([]controlling_kettle.KettleEvent, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	eventType := normalizeEventType(f.Type)

	var out []controlling_kettle.KettleEvent
	for _, ev := range l.events {
		if !from.IsZero() && ev.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && ev.OccurredAt.After(to) {
			continue
		}
		if eventType != "" && ev.Type != eventType {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}
