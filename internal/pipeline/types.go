package pipeline

import "github.com/Iron-Ham/shuttle/internal/errors"

// Stage names used in results, logs, and events.
const (
	StageRead  = "read"
	StageWrite = "write"
)

// StageResult is the terminal status of a single pipeline stage.
type StageResult struct {
	// Stage is the stage's name, StageRead or StageWrite.
	Stage string
	// Bytes is the total number of bytes the stage processed.
	Bytes int64
	// Err is the stage's terminal error, nil on success. A stage torn
	// down while parked (because its peer terminated first) reports nil.
	Err error
}

// Result is the outcome of a single pipeline run, collected by the
// coordinator after control returns to it.
type Result struct {
	// RunID is the UUID assigned to this run.
	RunID string
	// Reader is the read stage's terminal status.
	Reader StageResult
	// Writer is the write stage's terminal status.
	Writer StageResult
	// Rounds is the number of fill/drain rounds completed.
	Rounds int
	// BytesCopied is the number of bytes delivered to the destination.
	BytesCopied int64
}

// Err returns both stages' terminal errors, reader first, or nil if both
// stages succeeded. Each stage's status is surfaced verbatim.
func (r Result) Err() error {
	return errors.Join(r.Reader.Err, r.Writer.Err)
}
