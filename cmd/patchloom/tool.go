package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/patchloom/patchloom/internal/tools"
)

func runTool(args []string) error {
	fset := flag.NewFlagSet("tool", flag.ContinueOnError)
	root := fset.String("root", ".", "workspace root")
	name := fset.String("name", "", "tool name (e.g. ApplyEditBlock)")
	params := fset.String("params", "", "JSON object of tool parameters")
	if err := fset.Parse(args); err != nil {
		return err
	}

	_, registry, err := openWorkspace(*root)
	if err != nil {
		return err
	}

	if *name == "" {
		fmt.Fprintln(os.Stderr, "available tools:")
		for _, spec := range registry.ListSpecs() {
			fmt.Fprintf(os.Stderr, "  %-22s %s\n", spec.Name(), spec.Description())
		}
		return nil
	}

	parameters := map[string]interface{}{}
	if *params != "" {
		if err := json.Unmarshal([]byte(*params), &parameters); err != nil {
			return fmt.Errorf("invalid -params JSON: %w", err)
		}
	}

	result := registry.Execute(context.Background(), &tools.ToolCall{
		ID:         uuid.NewString(),
		Name:       *name,
		Parameters: parameters,
	})

	return printJSON(result)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
