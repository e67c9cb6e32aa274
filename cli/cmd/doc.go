// Package cmd implements the reflex subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable holding the path of the cache
	// directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the path of the YAML
	// configuration file.
	ConfigIdentifier = "config"
)
