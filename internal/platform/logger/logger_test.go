package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNew_JSON_IncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "clinical-sharing", Output: &buf})

	log.With(map[string]any{"patient_id": "p-1"}).Info("grant.created", map[string]any{
		"grant_id": "g-1",
		"":         "ignored",
		"err":      errors.New("boom"),
	})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json log line: %v (%s)", err, buf.String())
	}

	want := map[string]string{
		"app":        "clinical-sharing",
		"patient_id": "p-1",
		"grant_id":   "g-1",
		"err":        "boom",
		"message":    "grant.created",
		"level":      "info",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Fatalf("expected %s=%q, got %#v", k, v, entry[k])
		}
	}
	if _, ok := entry[""]; ok {
		t.Fatalf("empty key must be dropped")
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatJSON, Output: &buf})

	log.Info("hidden", nil)
	log.Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %s", buf.String())
	}

	log.Warn("shown", nil)
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn line, got %s", buf.String())
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("nope") != Info {
		t.Fatalf("unexpected level parsing")
	}
	if ParseFormat(" JSON ") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}
