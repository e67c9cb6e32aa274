// Package profile starts and stops runtime profiling with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof -o reflex .
//	reflex --pprof-mode=cpu call -s defs.txt add --bind a=1,b=2
//	go tool pprof -http=: ~/.cache/reflex/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] does nothing.
//
// Supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread and trace. Profiles are written to the profiler path under
// the name of the mode, such as cpu.pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
