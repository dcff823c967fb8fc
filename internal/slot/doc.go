// Package slot provides the single shared buffer through which the copy
// pipeline moves data between its producer and consumer stages.
//
// A [Slot] holds at most one round of in-flight data: the producer fills
// it, hands control to the consumer, and the consumer drains it before the
// producer may touch it again. The slot carries no lock — exclusive access
// is guaranteed by the cooperative scheduler, which only ever runs one
// stage at a time. What the slot does enforce is the turn protocol itself:
// every fill must be followed by exactly one drain, and out-of-turn access
// panics with [errors.ErrSlotViolation]. This makes a stale read or a
// premature overwrite a loud programming error instead of silent data
// corruption.
package slot
