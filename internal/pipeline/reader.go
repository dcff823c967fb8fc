package pipeline

import (
	"io"

	"github.com/Iron-Ham/shuttle/internal/errors"
	"github.com/Iron-Ham/shuttle/internal/event"
	"github.com/Iron-Ham/shuttle/internal/fiber"
	"github.com/Iron-Ham/shuttle/internal/logging"
	"github.com/Iron-Ham/shuttle/internal/slot"
)

// readStage fills the shared slot from the source and hands each round to
// the writer fiber.
type readStage struct {
	pipe   *Pipeline
	buf    *slot.Slot
	sched  *fiber.Scheduler
	next   *fiber.Fiber // writer
	log    *logging.Logger
	result StageResult
}

// run is the reader fiber's entry function. Returning from it hands
// control back to the coordinator.
func (r *readStage) run() {
	for {
		n, err := r.pipe.src.Read(r.buf.Buffer())
		if n > 0 {
			r.buf.Produce(n)
			r.result.Bytes += int64(n)
			round := r.buf.Rounds()
			r.log.Debug("slot filled", "round", round, "bytes", n)
			r.pipe.cfg.bus.Publish(event.NewRoundFilledEvent(round, n, r.result.Bytes))

			r.sched.Switch(r.next)
			// Control returns here only after the writer has drained
			// this same round.
		}

		if err == io.EOF {
			r.log.Debug("end of input", "bytes", r.result.Bytes)
			break
		}
		if err != nil {
			r.result.Err = errors.NewStageError(StageRead, r.result.Bytes, err)
			r.log.Error("read failed", "bytes", r.result.Bytes, "error", err)
			break
		}
		// A (0, nil) read is legal for io.Reader implementations; try
		// again rather than treating it as end of input.
	}

	r.pipe.cfg.bus.Publish(event.NewStageFinishedEvent(StageRead, r.result.Bytes, r.result.Err))
}
