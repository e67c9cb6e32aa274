//go:build !pprof

package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/reflex/profile"
)

// pprofConfig adds no flags to the reflex command unless it is built with the
// pprof tag. The group is kept so help output stays stable.
type pprofConfig struct{}

func (pprofConfig) vars() kong.Vars { return kong.Vars{} }

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: profile.Tag, Title: "Profiling (pprof)"}
}

// start does nothing; reflex commands run unprofiled.
func (pprofConfig) start(context.Context) (stop func()) { return func() {} }
