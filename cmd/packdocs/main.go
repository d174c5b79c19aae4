// cmd/packdocs/main.go
//
// Entry point for the packdocs CLI. All the work happens in internal/cli;
// this binary only hands control to the root command.

package main

import "github.com/kingrea/packdocs/internal/cli"

func main() {
	cli.Execute()
}
