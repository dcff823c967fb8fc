// Package pipeline implements the two-stage cooperative copy pipeline.
//
// A [Pipeline] moves bytes from a source to a destination through a single
// shared buffer slot. The work is split across two fibers — a reader that
// fills the slot and a writer that drains it — which hand control to each
// other explicitly after every fill and every drain. The goroutine that
// calls [Pipeline.Run] acts as the coordinator: it starts the pipeline
// with a single switch to the reader and regains control once the run is
// over, successfully or not.
//
// # Protocol
//
// Control strictly alternates: the writer never sees the slot before the
// reader has filled it, and the reader never refills before the writer has
// drained the previous round. Because only one fiber runs at a time, the
// slot needs no lock; the right to touch it travels with the run token.
//
// # Termination contract
//
// The writer is only ever resumed with a non-zero payload and has no
// explicit end-of-input signal. Termination is driven entirely by the
// reader and the coordinator:
//
//   - On end-of-input or a read error the reader records its result and
//     its entry function returns, which hands control to the coordinator.
//     The writer, parked at its switch back to the reader, is torn down by
//     the coordinator. On a zero-length source the writer never starts at
//     all and reports zero bytes with no error.
//   - On a write error the writer records its result and returns; the
//     reader, parked at its switch to the writer, is torn down the same
//     way. A torn-down reader keeps its accumulated byte count and carries
//     no error of its own — the writer's failure is what surfaces.
//
// # Failure semantics
//
// A stage that hits an I/O error does not retry: it wraps the error in an
// [errors.StageError] together with the bytes it processed before failing,
// and terminates. [Result.Err] surfaces each stage's terminal status
// verbatim; nothing is aggregated away or masked. There is no
// cancellation, no preemption, and no timeout: a source or destination
// that blocks forever blocks the run forever.
package pipeline
