package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "purgatory")
	logger.Info("room loaded", "room", "room1")

	out := buf.String()
	if !strings.Contains(out, "purgatory") {
		t.Errorf("output %q missing prefix", out)
	}
	if !strings.Contains(out, "room=room1") {
		t.Errorf("output %q missing key/value pair", out)
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	var buf bytes.Buffer
	l := New(&buf, "x")
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return the given logger")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "purgatory.log")

	logger, closer, err := OpenFile(path, "purgatory", "debug")
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	logger.Debug("dialogue shown", "text", "Welcome")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "dialogue shown") {
		t.Errorf("log file %q missing debug entry", data)
	}
}

func TestOpenFileBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "purgatory.log")
	if _, _, err := OpenFile(path, "purgatory", "loud"); err == nil {
		t.Error("OpenFile() with invalid level should fail")
	}
}
