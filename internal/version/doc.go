// Package version exposes build metadata and the cobra `version`
// subcommand shared by all binaries.
package version
