// Package main provides a CLI for the rain-observer ray tracer.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "render":
		runRenderCommand(args)
	case "animate":
		runAnimateCommand(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`raindiver - relativistic rain-observer ray tracer

Usage:
  raindiver <command> [options]

Commands:
  render    Render a single frame
  animate   Render a keyframed timeline to a frame sequence
  help      Show this help message

Use "raindiver <command> -h" for more information about a command.`)
}
