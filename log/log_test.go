package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_Defaults(t *testing.T) {
	l := Make(&bytes.Buffer{})

	if l.Level() != DefaultLevel {
		t.Errorf("expected default level %v, got %v", DefaultLevel, l.Level())
	}

	if l.Format() != DefaultFormat {
		t.Errorf("expected default format %v, got %v", DefaultFormat, l.Format())
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelError))
	l.Info("info message")

	if buf.Len() > 0 {
		t.Errorf("info message logged at error level: %q", buf.String())
	}

	l.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Errorf("error message missing: %q", buf.String())
	}
}

func TestLogger_Make_WithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON))
	l.Info("test message", slog.String("key", "value"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("failed to parse JSON output %q: %v", buf.String(), err)
	}

	if rec["msg"] != "test message" {
		t.Errorf("expected msg=test message, got %v", rec["msg"])
	}

	if rec["key"] != "value" {
		t.Errorf("expected key=value, got %v", rec["key"])
	}

	if rec["level"] != "INFO" {
		t.Errorf("expected level=INFO, got %v", rec["level"])
	}
}

func TestLogger_Make_WithCaller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true)).Info("with caller")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller file in output, got %q", buf.String())
	}

	buf.Reset()
	Make(&buf, WithCaller(false)).Info("without caller")

	if strings.Contains(buf.String(), "source=") {
		t.Errorf("unexpected caller in output %q", buf.String())
	}
}

func TestLogger_Wrap_KeepsAttributes(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf).With(slog.String("component", "resolver"))
	l = l.Wrap(WithLevel(LevelDebug))
	l.Debug("resolved")

	out := buf.String()
	if !strings.Contains(out, "component=resolver") {
		t.Errorf("expected attribute after Wrap, got %q", out)
	}

	if !strings.Contains(out, "resolved") {
		t.Errorf("expected debug message after Wrap, got %q", out)
	}
}

func TestLogger_With_DoesNotAlias(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf).With(slog.String("a", "1"))
	left := base.With(slog.String("b", "2"))
	right := base.With(slog.String("c", "3"))

	left.Info("left")

	if strings.Contains(buf.String(), "c=3") {
		t.Errorf("left logger sees right attribute: %q", buf.String())
	}

	buf.Reset()
	right.Info("right")

	if strings.Contains(buf.String(), "b=2") {
		t.Errorf("right logger sees left attribute: %q", buf.String())
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var l Logger

	l.Trace("nothing")
	l.InfoContext(context.Background(), "nothing")
	l = l.With(slog.Int("n", 1))

	if l.Logger != nil {
		t.Error("With on zero Logger should stay zero")
	}

	if l.Level() != DefaultLevel {
		t.Errorf("zero Logger level %v", l.Level())
	}
}

func TestLogger_Pretty_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout(""))
	l.Warn("careful", slog.Int("n", 3), slog.Bool("ok", false))

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no escape codes for a buffer, got %q", out)
	}

	for _, want := range []string{"level=WARN", "msg=careful", "n=3", "ok=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestLogger_PrettyJSON_Fields(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithFormat(FormatJSON), WithTimeLayout(""))
	l.Info("hello", slog.String("who", "world"))

	out := buf.String()
	if !strings.HasPrefix(out, "{\n") || !strings.HasSuffix(out, "\n}\n") {
		t.Errorf("expected object framing, got %q", out)
	}

	if !strings.Contains(out, "who: world") {
		t.Errorf("expected who field, got %q", out)
	}
}

func TestLogger_ConcurrentCalls(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true))

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			l.Info("concurrent", slog.Int("i", i))
		}()
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 16 {
		t.Errorf("expected 16 lines, got %d", got)
	}
}

func TestPackage_Config_ReplacesDefault(t *testing.T) {
	original := Default()
	defer func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	}()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelDebug), WithFormat(FormatJSON))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) {
				t.Errorf("expected level %s, got %q", tt.level, out)
			}

			if !strings.Contains(out, `"key":"value"`) {
				t.Errorf("expected attribute, got %q", out)
			}
		})
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	l := Make(&bytes.Buffer{})

	for b.Loop() {
		l.Info("benchmark", slog.Int("n", 1))
	}
}

func BenchmarkLogger_Trace_Disabled(b *testing.B) {
	l := Make(&bytes.Buffer{})

	for b.Loop() {
		l.Trace("benchmark", slog.Int("n", 1))
	}
}
