package logx

import (
	"os"
	"strings"
	"testing"

	"slnbuild/internal/paths"
)

func TestNewWritesPrefixedLines(t *testing.T) {
	wp, err := paths.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	logger, closer, err := New(wp, "run-1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Printf("hello %s", "world")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(wp.LogsDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one log file, got %d", len(entries))
	}
	data, err := os.ReadFile(wp.LogsDir + string(os.PathSeparator) + entries[0].Name())
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.HasPrefix(line, "[run-1] ") || !strings.Contains(line, "hello world") {
		t.Fatalf("unexpected log line %q", line)
	}
}
