package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "reflex" {
		t.Errorf("Name = %q, want %q", Name, "reflex")
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("Version = %q, want %q", Version, want)
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/bin/reflex", "reflex"},
		{"/tmp/__debug_bin3141", Name},
		{"/tmp/__debug_bin", Name},
		{"C:/bin/reflex.exe", "reflex"},
		{"/home/u/.hidden.sh", "hidden"},
		{"/opt/tool", "tool"},
		{"/opt/...", Name},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := prefixOf(tt.path); got != tt.want {
				t.Errorf("prefixOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestUserDir(t *testing.T) {
	base := t.TempDir()

	got := userDir(func() (string, error) { return base, nil }, ".x")
	if want := filepath.Join(base, Prefix()); got != want {
		t.Errorf("userDir() = %q, want %q", got, want)
	}

	t.Setenv("HOME", base)

	got = userDir(func() (string, error) { return "", errors.New("unset") }, ".x")
	if want := filepath.Join(base, ".x", Prefix()); got != want {
		t.Errorf("userDir() fallback = %q, want %q", got, want)
	}
}

func TestConfigPath(t *testing.T) {
	if got, want := ConfigPath("a", "b"), filepath.Join(ConfigDir(), "a", "b"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}
