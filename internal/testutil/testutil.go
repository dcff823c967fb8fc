// Package testutil provides testing utilities for shuttle tests.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// PatternBytes returns n deterministic bytes. The pattern makes offset
// mistakes visible: byte i depends on i, so a shifted or truncated copy
// never compares equal to the original.
func PatternBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*7 + i/251)
	}
	return data
}

// WriteTempFile writes data to a file named name inside a fresh temp
// directory and returns its path. The file is removed when the test
// completes.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp file %s: %v", name, err)
	}
	return path
}

// FlakyReader wraps an io.Reader and fails with Err after FailAfter
// successful reads. It drives read-failure injection in pipeline tests.
type FlakyReader struct {
	R         io.Reader
	FailAfter int   // Number of reads that succeed before failing
	Err       error // Error returned once reads are exhausted

	reads int
}

// Read implements io.Reader.
func (f *FlakyReader) Read(p []byte) (int, error) {
	if f.reads >= f.FailAfter {
		return 0, f.Err
	}
	f.reads++
	return f.R.Read(p)
}

// FlakyWriter wraps an io.Writer and fails with Err after FailAfter
// successful writes. It drives write-failure injection in pipeline tests.
type FlakyWriter struct {
	W         io.Writer
	FailAfter int   // Number of writes that succeed before failing
	Err       error // Error returned once writes are exhausted

	writes int
}

// Write implements io.Writer.
func (f *FlakyWriter) Write(p []byte) (int, error) {
	if f.writes >= f.FailAfter {
		return 0, f.Err
	}
	f.writes++
	return f.W.Write(p)
}
