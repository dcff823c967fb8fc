package pipeline

import (
	"bytes"
	"testing"

	"go.uber.org/goleak"

	"github.com/Iron-Ham/shuttle/internal/errors"
	"github.com/Iron-Ham/shuttle/internal/event"
	"github.com/Iron-Ham/shuttle/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPipeline_ThreeRoundCopy(t *testing.T) {
	// 70000 bytes at capacity 32768 is exactly three rounds:
	// 32768, 32768, 4464.
	src := testutil.PatternBytes(70000)
	var dst bytes.Buffer

	bus := event.NewBus()
	var fills []int
	bus.Subscribe("round.filled", func(e event.Event) {
		fills = append(fills, e.(event.RoundFilledEvent).Bytes)
	})

	result, err := New(bytes.NewReader(src), &dst, WithCapacity(32768), WithBus(bus)).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Rounds != 3 {
		t.Errorf("Rounds = %d, want 3", result.Rounds)
	}
	wantFills := []int{32768, 32768, 4464}
	if len(fills) != len(wantFills) {
		t.Fatalf("fill sizes = %v, want %v", fills, wantFills)
	}
	for i, want := range wantFills {
		if fills[i] != want {
			t.Errorf("fill %d = %d, want %d", i, fills[i], want)
		}
	}

	if result.Reader.Bytes != 70000 || result.Reader.Err != nil {
		t.Errorf("reader result = %+v, want 70000 bytes and no error", result.Reader)
	}
	if result.Writer.Bytes != 70000 || result.Writer.Err != nil {
		t.Errorf("writer result = %+v, want 70000 bytes and no error", result.Writer)
	}
	if result.Reader.Bytes != result.Writer.Bytes {
		t.Error("bytes read and bytes written must match on success")
	}
	if !bytes.Equal(dst.Bytes(), src) {
		t.Error("destination content differs from source")
	}
}

func TestPipeline_EmptySource(t *testing.T) {
	var dst bytes.Buffer

	result, err := New(bytes.NewReader(nil), &dst).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Rounds != 0 {
		t.Errorf("Rounds = %d, want 0", result.Rounds)
	}
	if result.Reader.Bytes != 0 || result.Reader.Err != nil {
		t.Errorf("reader result = %+v, want success with 0 bytes", result.Reader)
	}
	// The writer never runs on an empty source; it still reports a
	// well-formed zero result.
	if result.Writer.Stage != StageWrite || result.Writer.Bytes != 0 || result.Writer.Err != nil {
		t.Errorf("writer result = %+v, want success with 0 bytes", result.Writer)
	}
	if dst.Len() != 0 {
		t.Errorf("destination has %d bytes, want 0", dst.Len())
	}
}

func TestPipeline_SingleRound(t *testing.T) {
	src := testutil.PatternBytes(10)
	var dst bytes.Buffer

	result, err := New(bytes.NewReader(src), &dst, WithCapacity(64)).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Rounds != 1 {
		t.Errorf("Rounds = %d, want 1", result.Rounds)
	}
	if result.BytesCopied != 10 {
		t.Errorf("BytesCopied = %d, want 10", result.BytesCopied)
	}
	if !bytes.Equal(dst.Bytes(), src) {
		t.Error("destination content differs from source")
	}
}

func TestPipeline_StrictAlternation(t *testing.T) {
	src := testutil.PatternBytes(5000)

	bus := event.NewBus()
	var sequence []string
	bus.SubscribeAll(func(e event.Event) {
		sequence = append(sequence, e.EventType())
	})

	var dst bytes.Buffer
	if _, err := New(bytes.NewReader(src), &dst, WithCapacity(1000), WithBus(bus)).Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Every fill must be followed by the matching drain before the next
	// fill appears.
	pending := false
	for _, typ := range sequence {
		switch typ {
		case "round.filled":
			if pending {
				t.Fatal("second fill before the previous round was drained")
			}
			pending = true
		case "round.drained":
			if !pending {
				t.Fatal("drain with no pending fill")
			}
			pending = false
		}
	}
	if pending {
		t.Error("final fill was never drained")
	}
}

func TestPipeline_ReadFailureAfterRounds(t *testing.T) {
	src := testutil.PatternBytes(4096)
	readErr := errors.New("device gone")
	flaky := &testutil.FlakyReader{R: bytes.NewReader(src), FailAfter: 2, Err: readErr}

	var dst bytes.Buffer
	result, err := New(flaky, &dst, WithCapacity(1024)).Run()
	if err == nil {
		t.Fatal("Run should surface the read failure")
	}

	var stageErr *errors.StageError
	if !errors.As(result.Reader.Err, &stageErr) {
		t.Fatalf("reader error = %v, want a StageError", result.Reader.Err)
	}
	if stageErr.Stage != StageRead || !errors.Is(stageErr, readErr) {
		t.Errorf("unexpected stage error: %+v", stageErr)
	}

	// Two full rounds made it through before the failure.
	if result.Reader.Bytes != 2048 {
		t.Errorf("reader bytes = %d, want 2048", result.Reader.Bytes)
	}
	if result.Writer.Bytes != 2048 || result.Writer.Err != nil {
		t.Errorf("writer result = %+v, want success with 2048 bytes", result.Writer)
	}
	if !bytes.Equal(dst.Bytes(), src[:2048]) {
		t.Error("destination should hold exactly the rounds drained before the failure")
	}
}

func TestPipeline_WriteFailure(t *testing.T) {
	src := testutil.PatternBytes(4096)
	writeErr := errors.New("disk full")
	var sink bytes.Buffer
	flaky := &testutil.FlakyWriter{W: &sink, FailAfter: 1, Err: writeErr}

	result, err := New(bytes.NewReader(src), flaky, WithCapacity(1024)).Run()
	if err == nil {
		t.Fatal("Run should surface the write failure")
	}

	var stageErr *errors.StageError
	if !errors.As(result.Writer.Err, &stageErr) {
		t.Fatalf("writer error = %v, want a StageError", result.Writer.Err)
	}
	if stageErr.Stage != StageWrite || !errors.Is(stageErr, writeErr) {
		t.Errorf("unexpected stage error: %+v", stageErr)
	}

	// One round drained, the second failed. The reader had already
	// filled the second round, was parked at the handoff, and was torn
	// down by the coordinator; its own status carries no error.
	if result.Writer.Bytes != 1024 {
		t.Errorf("writer bytes = %d, want 1024", result.Writer.Bytes)
	}
	if result.Reader.Bytes != 2048 {
		t.Errorf("reader bytes = %d, want 2048", result.Reader.Bytes)
	}
	if result.Reader.Err != nil {
		t.Errorf("reader error = %v, want nil", result.Reader.Err)
	}
	if !bytes.Equal(sink.Bytes(), src[:1024]) {
		t.Error("destination should hold exactly the rounds drained before the failure")
	}
}

func TestPipeline_RunIDsAreUnique(t *testing.T) {
	var dst bytes.Buffer

	first, err := New(bytes.NewReader([]byte("a")), &dst).Run()
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	second, err := New(bytes.NewReader([]byte("b")), &dst).Run()
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if first.RunID == "" || first.RunID == second.RunID {
		t.Errorf("run IDs should be unique and non-empty, got %q and %q", first.RunID, second.RunID)
	}
}

func TestPipeline_CompletionEvent(t *testing.T) {
	src := testutil.PatternBytes(100)

	bus := event.NewBus()
	var completed *event.CopyCompletedEvent
	bus.Subscribe("copy.completed", func(e event.Event) {
		ev := e.(event.CopyCompletedEvent)
		completed = &ev
	})

	var dst bytes.Buffer
	result, err := New(bytes.NewReader(src), &dst, WithBus(bus)).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if completed == nil {
		t.Fatal("copy.completed event was not published")
	}
	if completed.RunID != result.RunID {
		t.Errorf("event run ID = %q, want %q", completed.RunID, result.RunID)
	}
	if completed.Bytes != 100 || completed.Rounds != 1 || completed.Err != nil {
		t.Errorf("unexpected completion event: %+v", completed)
	}
}
