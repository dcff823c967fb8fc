package pipeline

import (
	"io"

	"github.com/Iron-Ham/shuttle/internal/errors"
	"github.com/Iron-Ham/shuttle/internal/event"
	"github.com/Iron-Ham/shuttle/internal/fiber"
	"github.com/Iron-Ham/shuttle/internal/logging"
	"github.com/Iron-Ham/shuttle/internal/slot"
)

// writeStage drains each round the reader placed in the shared slot to
// the destination and hands control back for the next fill.
type writeStage struct {
	pipe   *Pipeline
	buf    *slot.Slot
	sched  *fiber.Scheduler
	next   *fiber.Fiber // reader
	log    *logging.Logger
	result StageResult
}

// run is the writer fiber's entry function. The writer is only ever
// started once the slot holds a round, so the first Consume is always
// legal. Returning hands control back to the coordinator.
func (w *writeStage) run() {
	for {
		payload := w.buf.Consume()
		round := w.buf.Rounds()

		n, err := w.pipe.dst.Write(payload)
		if err == nil && n < len(payload) {
			err = io.ErrShortWrite
		}
		w.result.Bytes += int64(n)

		if err != nil {
			w.result.Err = errors.NewStageError(StageWrite, w.result.Bytes, err)
			w.log.Error("write failed", "round", round, "bytes", w.result.Bytes, "error", err)
			break
		}

		w.log.Debug("slot drained", "round", round, "bytes", n)
		w.pipe.cfg.bus.Publish(event.NewRoundDrainedEvent(round, n, w.result.Bytes))

		w.sched.Switch(w.next)
		// Control returns here only after the reader has refilled the
		// slot; if the reader terminates instead, the coordinator tears
		// this fiber down while it is parked on the line above.
	}

	w.pipe.cfg.bus.Publish(event.NewStageFinishedEvent(StageWrite, w.result.Bytes, w.result.Err))
}
