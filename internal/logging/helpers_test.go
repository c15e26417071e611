package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Debug(nil, "debug")
	Info(nil, "info")
	Warn(nil, "warn")
	Error(nil, "error", errors.New("boom"))
}

func TestErrorAttachesErr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Error(logger, "save failed", errors.New("disk full"), FieldBackend, "json")

	out := buf.String()
	if !strings.Contains(out, "error=\"disk full\"") {
		t.Fatalf("expected error attr in %q", out)
	}
	if !strings.Contains(out, "backend=json") {
		t.Fatalf("expected backend attr in %q", out)
	}
}
