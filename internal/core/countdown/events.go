package countdown

import (
	"time"

	"pomodoro/internal/core/model"
)

// EventType defines the type of Engine event.
type EventType string

const (
	EventStateChange       EventType = "state_change"
	EventProgress          EventType = "progress"
	EventIntervalCompleted EventType = "interval_completed"
	EventInteraction       EventType = "interaction"
	EventDurationChange    EventType = "duration_change"
)

// Event represents an Engine update for observers.
type Event struct {
	Type      EventType
	Mode      model.Mode
	Running   bool
	Remaining int
	Display   string
	RunID     string

	// Set on EventDurationChange only.
	DurationMode model.Mode
	Minutes      int
	Clamped      bool

	At time.Time
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Mode      model.Mode
	Running   bool
	Remaining int
	Display   string
	Durations model.Durations
	RunID     string
}

// DurationUpdate describes an accepted duration change.
type DurationUpdate struct {
	Mode    model.Mode
	Minutes int
	// Clamped is set when the input exceeded model.MaxMinutes.
	Clamped bool
}
