package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/shuttle/internal/config"
	"github.com/Iron-Ham/shuttle/internal/errors"
	"github.com/Iron-Ham/shuttle/internal/logging"
	"github.com/Iron-Ham/shuttle/internal/testutil"
)

func TestRootCommand_ArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"one argument", []string{"only-source"}},
		{"three arguments", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rootCmd.Args(rootCmd, tt.args)
			if err == nil {
				t.Fatal("expected a usage error")
			}
			if !errors.IsUsage(err) {
				t.Errorf("error = %v, want a UsageError", err)
			}
		})
	}

	if err := rootCmd.Args(rootCmd, []string{"src", "dst"}); err != nil {
		t.Errorf("two arguments should validate, got %v", err)
	}
}

func TestCopyFile_RoundTrip(t *testing.T) {
	data := testutil.PatternBytes(70000)
	source := testutil.WriteTempFile(t, "source.bin", data)
	dest := filepath.Join(t.TempDir(), "dest.bin")

	cfg := config.Default()
	cfg.TUI.Progress = false

	result, err := copyFile(source, dest, cfg, logging.NopLogger(), false)
	if err != nil {
		t.Fatalf("copyFile failed: %v", err)
	}

	if result.BytesCopied != 70000 || result.Rounds != 3 {
		t.Errorf("result = %d bytes in %d rounds, want 70000 in 3", result.BytesCopied, result.Rounds)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("destination content differs from source")
	}
}

func TestCopyFile_EmptySource(t *testing.T) {
	source := testutil.WriteTempFile(t, "empty.bin", nil)
	dest := filepath.Join(t.TempDir(), "dest.bin")

	cfg := config.Default()
	cfg.TUI.Progress = false

	result, err := copyFile(source, dest, cfg, logging.NopLogger(), false)
	if err != nil {
		t.Fatalf("copyFile failed: %v", err)
	}
	if result.BytesCopied != 0 {
		t.Errorf("BytesCopied = %d, want 0", result.BytesCopied)
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("destination was not created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("destination size = %d, want 0", info.Size())
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "dest.bin")

	cfg := config.Default()
	cfg.TUI.Progress = false

	if _, err := copyFile(filepath.Join(t.TempDir(), "missing.bin"), dest, cfg, logging.NopLogger(), false); err == nil {
		t.Fatal("copyFile should fail for a missing source")
	}
}

func TestCopyFile_RefusesExistingDestination(t *testing.T) {
	source := testutil.WriteTempFile(t, "source.bin", []byte("new"))
	dest := testutil.WriteTempFile(t, "dest.bin", []byte("precious"))

	cfg := config.Default()
	cfg.TUI.Progress = false

	if _, err := copyFile(source, dest, cfg, logging.NopLogger(), false); err == nil {
		t.Fatal("copyFile should refuse to overwrite without force")
	}

	// The original content must be untouched.
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if string(got) != "precious" {
		t.Errorf("destination = %q, want untouched %q", got, "precious")
	}

	// With force the copy goes through.
	if _, err := copyFile(source, dest, cfg, logging.NopLogger(), true); err != nil {
		t.Fatalf("forced copyFile failed: %v", err)
	}
	got, _ = os.ReadFile(dest)
	if string(got) != "new" {
		t.Errorf("destination after force = %q, want %q", got, "new")
	}
}

func TestReportResult(t *testing.T) {
	source := testutil.WriteTempFile(t, "source.bin", testutil.PatternBytes(100))
	dest := filepath.Join(t.TempDir(), "dest.bin")

	cfg := config.Default()
	cfg.TUI.Progress = false

	result, err := copyFile(source, dest, cfg, logging.NopLogger(), false)
	if err != nil {
		t.Fatalf("copyFile failed: %v", err)
	}

	var report bytes.Buffer
	reportResult(&report, result)

	text := report.String()
	if !strings.Contains(text, "read: 100 bytes, ok") {
		t.Errorf("report missing read stage line: %q", text)
	}
	if !strings.Contains(text, "write: 100 bytes, ok") {
		t.Errorf("report missing write stage line: %q", text)
	}
}
