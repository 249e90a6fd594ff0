package main

import (
	"fmt"
	"io"
	"os"
)

var version = "dev"

// stdout is where command output goes; tests replace it.
var stdout io.Writer = os.Stdout

var commands = map[string]func([]string) error{
	"list":     runList,
	"describe": runDescribe,
	"schema":   runSchema,
	"verify":   runVerify,
	"invoke":   runInvoke,
	"whoami":   runWhoami,
}

func usage() {
	fmt.Fprintf(os.Stderr, `flowsctl - AWS block catalog CLI (version %s)

Usage:
  flowsctl <command> [options]

Commands:
  list       List block types, optionally filtered by service
  describe   Show the declaration of one block
  schema     Export all block declarations as JSON
  verify     Check every block's parameters against the SDK input types
  invoke     Invoke a block once and print what it emits
  whoami     Show the identity behind the configured credentials

Run 'flowsctl <command> -h' for command-specific help.
`, version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		usage()
		os.Exit(0)
	}
	if cmd == "-v" || cmd == "--version" || cmd == "version" {
		fmt.Println(version)
		os.Exit(0)
	}

	fn, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}

	if err := fn(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
