// Package main is the single-binary entrypoint for Vita.
// Vita is a local-first health tracker — one binary, all state on disk.
package main

import "github.com/vitalog/vita/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
