package cli

import (
	"testing"

	"github.com/ardnew/reflex/log"
)

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		caller bool
		pretty bool
	}{
		{"none", []string{"call", "add"}, "", "", false, true},
		{"assigned", []string{"--log-level=debug", "--log-format=json"}, "debug", "json", false, true},
		{"separate", []string{"--log-level", "warn", "params"}, "warn", "", false, true},
		{"missing value", []string{"--log-level", "--log-caller"}, "", "", true, true},
		{"negated", []string{"--no-log-pretty"}, "", "", false, false},
		{"negated assigned", []string{"--no-log-pretty=false"}, "", "", false, true},
		{"bool assigned", []string{"--log-caller=true"}, "", "", true, true},
		{"bad bool", []string{"--log-caller=maybe"}, "", "", false, true},
		{"after terminator", []string{"--", "--log-level=error"}, "", "", false, true},
		{"short ignored", []string{"-s", "--log-level=trace"}, "trace", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level {
				t.Errorf("Level = %q, want %q", f.Level, tt.level)
			}

			if f.Format != tt.format {
				t.Errorf("Format = %q, want %q", f.Format, tt.format)
			}

			if f.Caller != tt.caller {
				t.Errorf("Caller = %v, want %v", f.Caller, tt.caller)
			}

			if f.Pretty != tt.pretty {
				t.Errorf("Pretty = %v, want %v", f.Pretty, tt.pretty)
			}
		})
	}

	log.Config(log.WithLevel(log.DefaultLevel), log.WithFormat(log.DefaultFormat))
}

func TestLogConfig_Vars(t *testing.T) {
	vars := (&logConfig{}).vars()

	if got, want := vars["logLevelEnum"], "trace,debug,info,warn,error"; got != want {
		t.Errorf("logLevelEnum = %q, want %q", got, want)
	}

	if got, want := vars["logFormatEnum"], "text,json"; got != want {
		t.Errorf("logFormatEnum = %q, want %q", got, want)
	}
}
