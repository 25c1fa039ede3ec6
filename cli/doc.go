// Package cli implements the xeval command-line interface.
//
// The CLI wires the expression language to its collaborators: the eval
// command evaluates expressions from arguments or stdin, the repl
// command runs the interactive shell, and the init command writes a
// default configuration file.
//
// Flags are parsed with [github.com/alecthomas/kong]. Logging flags
// apply during parsing (via encoding.TextUnmarshaler plus an early
// argv scan) so diagnostics from parsing itself honor them, and a YAML
// configuration file at the user config directory provides defaults
// that command-line flags override.
package cli
