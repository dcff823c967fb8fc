package slot

import (
	"fmt"

	"github.com/Iron-Ham/shuttle/internal/errors"
)

// DefaultCapacity is the buffer size used when the caller does not choose
// one. One round moves at most this many bytes.
const DefaultCapacity = 32768

// Turn identifies which stage may touch the slot next.
type Turn int

const (
	// TurnProducer means the slot is empty (or consumed) and may be filled.
	TurnProducer Turn = iota
	// TurnConsumer means the slot holds data that must be drained before
	// the next fill.
	TurnConsumer
)

// String returns a human-readable name for the turn.
func (t Turn) String() string {
	switch t {
	case TurnProducer:
		return "producer"
	case TurnConsumer:
		return "consumer"
	default:
		return "unknown"
	}
}

// Slot is a fixed-capacity single-entry buffer with strict fill/drain
// alternation. It is not safe for concurrent use; callers rely on
// cooperative scheduling for exclusion.
type Slot struct {
	buf    []byte
	filled int
	turn   Turn
	rounds int
}

// Snapshot is a point-in-time view of a slot's state, for logging and
// diagnostics.
type Snapshot struct {
	Capacity int
	Filled   int
	Turn     Turn
	Rounds   int
}

// New creates an empty slot with the given capacity. Capacity must be
// positive.
func New(capacity int) *Slot {
	if capacity <= 0 {
		panic(fmt.Errorf("%w: slot capacity %d must be positive", errors.ErrSlotViolation, capacity))
	}
	return &Slot{buf: make([]byte, capacity), turn: TurnProducer}
}

// Buffer returns the slot's full-capacity backing array for the producer
// to read into. The contents are only meaningful up to the count passed to
// the following Produce call.
func (s *Slot) Buffer() []byte {
	if s.turn != TurnProducer {
		panic(fmt.Errorf("%w: buffer requested while unconsumed data is pending", errors.ErrSlotViolation))
	}
	return s.buf
}

// Produce marks n bytes of the buffer as filled and passes the turn to the
// consumer. It panics if the consumer has not drained the previous round,
// or if n is outside (0, capacity].
func (s *Slot) Produce(n int) {
	if s.turn != TurnProducer {
		panic(fmt.Errorf("%w: produce before previous round was consumed", errors.ErrSlotViolation))
	}
	if n <= 0 || n > len(s.buf) {
		panic(fmt.Errorf("%w: produced %d bytes, capacity %d", errors.ErrSlotViolation, n, len(s.buf)))
	}
	s.filled = n
	s.turn = TurnConsumer
	s.rounds++
}

// Consume returns the current round's payload and passes the turn back to
// the producer. The returned slice aliases the slot's buffer and is only
// valid until the next Produce. It panics if no round is pending.
func (s *Slot) Consume() []byte {
	if s.turn != TurnConsumer {
		panic(fmt.Errorf("%w: consume with no produced data", errors.ErrSlotViolation))
	}
	payload := s.buf[:s.filled]
	s.filled = 0
	s.turn = TurnProducer
	return payload
}

// Cap returns the slot's capacity in bytes.
func (s *Slot) Cap() int { return len(s.buf) }

// Filled returns the byte count of the pending round, or zero if the turn
// belongs to the producer.
func (s *Slot) Filled() int { return s.filled }

// Rounds returns how many fills have been produced so far.
func (s *Slot) Rounds() int { return s.rounds }

// State returns a diagnostic snapshot of the slot.
func (s *Slot) State() Snapshot {
	return Snapshot{
		Capacity: len(s.buf),
		Filled:   s.filled,
		Turn:     s.turn,
		Rounds:   s.rounds,
	}
}
