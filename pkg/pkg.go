// Package pkg holds the identity of the reflex module and the directories
// its command uses.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the module, read from the VERSION file
// at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name, also used for configuration and cache
	// directories.
	Name = "reflex"
	// Description is the one-line summary shown in help output.
	Description = "Call functions with arguments bound by parameter name"
)
