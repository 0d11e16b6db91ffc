package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogger_TextFormat_SortedKeysAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, App: "vet", Output: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"request_id": "abc"}).Info("hello", map[string]any{"dog_id": 7})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered, got %q", out)
	}
	if !strings.Contains(out, "app=vet dog_id=7 level=info msg=hello request_id=abc") {
		t.Fatalf("unexpected text line: %q", out)
	}
}

func TestLogger_JSONFormat_SerializesErrors(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, Output: &buf})

	l.Error("boom", map[string]any{"error": errors.New("disk full")})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["error"] != "disk full" || entry["level"] != "error" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("nope") != Info {
		t.Fatalf("ParseLevel mismatch")
	}
	if ParseFormat(" json ") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("ParseFormat mismatch")
	}
}
