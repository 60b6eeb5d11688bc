// Package version exposes build metadata for the alarm clock.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags. Full renders them for the `version` subcommand and the startup log.
package version
