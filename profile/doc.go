// Package profile provides optional runtime profiling for the xeval
// application.
//
// This package integrates [github.com/pkg/profile] behind the "pprof"
// build tag. When built without the tag (the default), every operation
// is a no-op with zero runtime overhead.
//
// Supported modes when built with the tag: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, and trace. Use [Modes] to
// retrieve the list programmatically (it is empty without the tag, so
// the CLI flag enum collapses accordingly).
//
//	var cfg profile.Config = func() (string, string, bool) {
//		return "cpu", "/tmp/profiles", true
//	}
//	defer cfg.Start().Stop()
//
// Profile files are written to the configured directory with names
// matching the mode (cpu.pprof, mem.pprof, ...), and can be analyzed
// with go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
