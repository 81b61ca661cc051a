package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		DebugLevel: zapcore.DebugLevel,
		"bogus":    defaultZapLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestNormalizeLevel(t *testing.T) {
	if got := normalizeLevel("  WARN "); got != WarnLevel {
		t.Fatalf("got %q", got)
	}
	if got := normalizeLevel(""); got != InfoLevel {
		t.Fatalf("empty level should default to info, got %q", got)
	}
}

func TestNopAndNamed(t *testing.T) {
	l := Nop().Named("panel")
	// must not panic
	l.Infow("noop", "k", "v")
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", &buf).Named("sampler")
	l.Infow("dropped")
	l.Warnw("rs485_read_failed", "sensor", 2)

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	for _, want := range []string{"WARN", "sampler", "rs485_read_failed", "sensor"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}
