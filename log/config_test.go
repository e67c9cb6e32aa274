package log

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{" error ", LevelError},
		{"debug+2", Level(-2)},
		{"verbose", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{" text", FormatText},
		{"xml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFormat(tt.in); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevels_RoundTrip(t *testing.T) {
	names := slices.Collect(Levels())
	if len(names) != 5 {
		t.Fatalf("expected 5 levels, got %v", names)
	}

	for _, name := range names {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}
}

func TestFormats_RoundTrip(t *testing.T) {
	for name := range Formats() {
		if got := ParseFormat(name).String(); got != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, got)
		}
	}
}

func TestOptions_SetFields(t *testing.T) {
	c := apply(config{},
		WithLevel(LevelWarn),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(true),
	)

	if c.level != LevelWarn {
		t.Errorf("expected level %v, got %v", LevelWarn, c.level)
	}

	if c.format != FormatJSON {
		t.Errorf("expected format %v, got %v", FormatJSON, c.format)
	}

	if !c.caller || !c.pretty {
		t.Errorf("expected caller and pretty enabled, got %v %v", c.caller, c.pretty)
	}
}

func TestOptions_DoNotShareState(t *testing.T) {
	base := makeConfig(nil)
	derived := apply(base, WithLevel(LevelError))

	if base.level != DefaultLevel {
		t.Errorf("base config changed to %v", base.level)
	}

	if derived.level != LevelError {
		t.Errorf("derived config has level %v", derived.level)
	}
}

func TestMakeFormatTime(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"rfc3339", "RFC3339", "2023-10-15T14:30:45Z"},
		{"rfc3339 nano", "rfc-3339-nano", "2023-10-15T14:30:45.123456789Z"},
		{"kitchen", "Kitchen", "2:30PM"},
		{"custom", "2006/01/02", "2023/10/15"},
		{"empty", "", ""},
		{"blank", "  \t", ""},
		{"none", "none", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := makeFormatTime(tt.layout)(now)
			if got != tt.want {
				t.Errorf("layout %q: got %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestConfig_Handler_LevelNames(t *testing.T) {
	var buf strings.Builder

	l := Make(&buf, WithLevel(LevelTrace), WithTimeLayout("none"))
	l.Trace("tracing")

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("expected TRACE level name, got %q", buf.String())
	}
}
