package main

import (
	"flag"
)

func runConsolidate(args []string) error {
	fset := flag.NewFlagSet("consolidate", flag.ContinueOnError)
	root := fset.String("root", ".", "workspace root")
	start := fset.Int("start", 0, "first sequence number in the range (inclusive)")
	end := fset.Int("end", 0, "last sequence number in the range (inclusive)")
	title := fset.String("title", "", "description for the merged entry")
	goal := fset.String("goal", "", "goal for the merged entry")
	if err := fset.Parse(args); err != nil {
		return err
	}

	ws, _, err := openWorkspace(*root)
	if err != nil {
		return err
	}

	merged, err := ws.Log.Consolidate(*start, *end, *title, *goal)
	if err != nil {
		return err
	}

	return printJSON(merged)
}
