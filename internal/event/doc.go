// Package event provides a pub-sub event bus for decoupled pipeline
// telemetry in shuttle.
//
// The copy pipeline publishes an event at every suspension point — after
// each fill, after each drain, and when a stage finishes — without knowing
// who will receive them. The CLI's progress display and the test suite
// subscribe without coupling to the pipeline internals.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Types
//
//   - [RoundFilledEvent]: Emitted when the reader fills the buffer slot
//   - [RoundDrainedEvent]: Emitted when the writer drains the slot
//   - [StageFinishedEvent]: Emitted when a stage reaches its terminal state
//   - [CopyCompletedEvent]: Emitted when the coordinator regains control
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. In practice the pipeline
// publishes from a single logical thread of control (only one fiber runs
// at a time), but subscribers may be registered from other goroutines.
// Handlers are called synchronously and protected against panics — a
// panicking handler will not prevent other handlers from being called.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	bus.Subscribe("round.filled", func(e event.Event) {
//	    filled := e.(event.RoundFilledEvent)
//	    log.Printf("round %d: %d bytes", filled.Round, filled.Bytes)
//	})
//
//	bus.Publish(event.NewRoundFilledEvent(1, 32768))
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - round.filled, round.drained
//   - stage.finished
//   - copy.completed
package event
