package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

type entry struct {
	Level      string            `json:"level"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func TestJSONLogger(t *testing.T) {
	t.Run("INFO level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintInfo("starting server", map[string]string{"addr": ":4000"})
		var e entry
		if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
			t.Fatal(err)
		}
		if e.Level != "INFO" {
			t.Errorf("expected level INFO; got %s", e.Level)
		}
		if e.Message != "starting server" {
			t.Errorf("unexpected message %q", e.Message)
		}
		if e.Properties["addr"] != ":4000" {
			t.Errorf("unexpected properties %v", e.Properties)
		}
		if e.Trace != "" {
			t.Error("expected no trace on INFO entries")
		}
	})

	t.Run("ERROR level includes trace", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintError(errors.New("boom"), nil)
		var e entry
		if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
			t.Fatal(err)
		}
		if e.Level != "ERROR" {
			t.Errorf("expected level ERROR; got %s", e.Level)
		}
		if e.Trace == "" {
			t.Error("expected a stack trace on ERROR entries")
		}
	})

	t.Run("below minimum level is dropped", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelError)
		l.PrintInfo("dropped", nil)
		if buf.Len() != 0 {
			t.Errorf("expected no output; got %q", buf.String())
		}
	})
}
