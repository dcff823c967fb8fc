package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "round.filled", "copy.completed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// RoundFilledEvent is emitted when the reader stage fills the buffer slot.
type RoundFilledEvent struct {
	baseEvent
	Round int   // 1-based round number
	Bytes int   // Bytes placed into the slot this round
	Total int64 // Cumulative bytes read so far
}

// NewRoundFilledEvent creates a RoundFilledEvent.
func NewRoundFilledEvent(round, bytes int, total int64) RoundFilledEvent {
	return RoundFilledEvent{
		baseEvent: newBaseEvent("round.filled"),
		Round:     round,
		Bytes:     bytes,
		Total:     total,
	}
}

// RoundDrainedEvent is emitted when the writer stage drains the slot to
// the destination.
type RoundDrainedEvent struct {
	baseEvent
	Round int   // 1-based round number
	Bytes int   // Bytes written this round
	Total int64 // Cumulative bytes written so far
}

// NewRoundDrainedEvent creates a RoundDrainedEvent.
func NewRoundDrainedEvent(round, bytes int, total int64) RoundDrainedEvent {
	return RoundDrainedEvent{
		baseEvent: newBaseEvent("round.drained"),
		Round:     round,
		Bytes:     bytes,
		Total:     total,
	}
}

// StageFinishedEvent is emitted when a pipeline stage reaches its terminal
// state, successfully or not.
type StageFinishedEvent struct {
	baseEvent
	Stage string // "read" or "write"
	Bytes int64  // Total bytes the stage processed
	Err   error  // Terminal error, nil on success
}

// NewStageFinishedEvent creates a StageFinishedEvent.
func NewStageFinishedEvent(stage string, bytes int64, err error) StageFinishedEvent {
	return StageFinishedEvent{
		baseEvent: newBaseEvent("stage.finished"),
		Stage:     stage,
		Bytes:     bytes,
		Err:       err,
	}
}

// CopyCompletedEvent is emitted when the coordinator regains control and
// the run is over.
type CopyCompletedEvent struct {
	baseEvent
	RunID  string // UUID of this pipeline run
	Rounds int    // Fill/drain rounds completed
	Bytes  int64  // Bytes delivered to the destination
	Err    error  // First surfaced stage error, nil on success
}

// NewCopyCompletedEvent creates a CopyCompletedEvent.
func NewCopyCompletedEvent(runID string, rounds int, bytes int64, err error) CopyCompletedEvent {
	return CopyCompletedEvent{
		baseEvent: newBaseEvent("copy.completed"),
		RunID:     runID,
		Rounds:    rounds,
		Bytes:     bytes,
		Err:       err,
	}
}
