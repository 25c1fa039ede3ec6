// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable output formats, log levels including
// a trace level below debug, and optional colorized pretty printing,
// all applied at logger creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithPretty(true))
//	logger.Info("ready", slog.String("version", pkg.Version))
//
// The zero value Logger discards everything, so library code can carry
// a Logger field unconditionally and log without nil checks.
//
// A package-level default logger backs the top-level Trace, Debug,
// Info, Warn, and Error functions; [Config] reconfigures it in place
// so command-line flags can take effect before argument parsing
// completes.
package log
