// Package main is the entry point for the stacksmith CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The stacksmith tool turns the weekly
// Publix deals document into a static deals page and publishes it.
package main

import "github.com/squatchystacks/stacksmith/cmd"

// main initializes and runs the stacksmith CLI application.
//
// It delegates all command parsing and execution to the cmd package,
// which handles subcommands like scan, build, search, and publish.
func main() {
	cmd.Execute()
}
