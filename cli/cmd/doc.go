// Package cmd implements the xeval subcommands for evaluating
// expressions, running the interactive shell, and managing configuration.
package cmd

// ConfigIdentifier is the kong variable identifier containing the path to
// the default configuration file.
const ConfigIdentifier = "config"
