package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/reflex/cli/cmd"
	"github.com/ardnew/reflex/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// CLI is the top-level command-line interface for reflex.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source  []string         `help:"Script file(s) or '-' for stdin." name:"source" short:"s" type:"existingfile"`
	Version kong.VersionFlag `help:"Print version and exit."`

	Init   cmd.Init   `cmd:"" help:"Initialize configuration file."`
	Params cmd.Params `cmd:"" help:"Show the parameter names of declarations or definitions."`
	Call   cmd.Call   `cmd:"" help:"Call a definition with bound arguments."`
	Repl   cmd.Repl   `cmd:"" help:"Bind and call definitions interactively."`
}

// Run executes the reflex CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := pkg.MkdirAll(); err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: pkg.ConfigPath(baseConfig + ".yaml"),
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Boolean log flags never pass through UnmarshalText, so apply every log
	// flag before kong reports anything.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, pkg.ConfigPath(baseConfig+".json")),
		kong.Configuration(resolveYAML, vars[cmd.ConfigIdentifier]),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSources(ctx, cli.Source)

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(&cli)
}
