package profile

// Profiler describes one profiling session.
type Profiler struct {
	// Mode selects what is profiled; see [Modes]. Empty disables profiling.
	Mode string
	// Path is the output directory. Empty uses the working directory.
	Path string
	// Quiet suppresses the start and stop messages of the profiler.
	Quiet bool
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Option returns a copy of a Profiler with one setting changed.
type Option func(Profiler) Profiler

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet sets whether the profiler reports its own progress.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// New returns a Profiler configured by opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		if opt != nil {
			p = opt(p)
		}
	}

	return p
}

// Start begins profiling. The result is always safe to stop, even when the
// mode is empty or unknown or profiling is not compiled in.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
