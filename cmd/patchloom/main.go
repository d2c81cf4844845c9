// Command patchloom drives the patchloom editing engine from the shell:
// invoke a single tool call, inspect the snapshot log, or consolidate a
// range of it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "tool":
		return runTool(args[1:])
	case "log":
		return runLog(args[1:])
	case "consolidate":
		return runConsolidate(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command %q (want tool, log, or consolidate)", args[0])
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `patchloom — snapshot-aware file editing engine

Usage:
  patchloom tool -root DIR -name TOOL -params JSON
  patchloom log -root DIR [-limit N] [-diffs] [-interactive]
  patchloom consolidate -root DIR -start N -end N [-title T] [-goal G]

"tool" dispatches a single call against the canonical toolset (run
"patchloom tool -name" with no -params to list registered tools).`)
}
