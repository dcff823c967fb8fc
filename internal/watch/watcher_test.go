package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/shuttle/internal/logging"
)

func TestWatcher_FiresOnSourceChange(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.bin")
	if err := os.WriteFile(source, []byte("v1"), 0644); err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	changed := make(chan struct{}, 1)
	w, err := New(source, 20*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}, logging.NopLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.Start()
	defer w.Stop()

	if err := os.WriteFile(source, []byte("v2"), 0644); err != nil {
		t.Fatalf("failed to modify source: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("onChange was not called after the source changed")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.bin")
	if err := os.WriteFile(source, []byte("v1"), 0644); err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	changed := make(chan struct{}, 1)
	w, err := New(source, 10*time.Millisecond, func() {
		changed <- struct{}{}
	}, logging.NopLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.Start()
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.bin"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write sibling: %v", err)
	}

	select {
	case <-changed:
		t.Fatal("onChange fired for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.bin")
	if err := os.WriteFile(source, nil, 0644); err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	w, err := New(source, time.Millisecond, func() {}, logging.NopLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.Start()
	defer w.Stop()

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write to source", fsnotify.Event{Name: source, Op: fsnotify.Write}, true},
		{"replace of source", fsnotify.Event{Name: source, Op: fsnotify.Create}, true},
		{"rename of source", fsnotify.Event{Name: source, Op: fsnotify.Rename}, true},
		{"chmod of source", fsnotify.Event{Name: source, Op: fsnotify.Chmod}, false},
		{"write to sibling", fsnotify.Event{Name: filepath.Join(dir, "other"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.ev); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}
