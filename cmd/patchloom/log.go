package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/patchloom/patchloom/internal/browser"
	"github.com/patchloom/patchloom/internal/snapshot"
)

func runLog(args []string) error {
	fset := flag.NewFlagSet("log", flag.ContinueOnError)
	root := fset.String("root", ".", "workspace root")
	limit := fset.Int("limit", 0, "only show the last N entries (0 = all)")
	diffs := fset.Bool("diffs", false, "include each entry's diff")
	interactive := fset.Bool("interactive", false, "browse the log in an interactive viewer")
	if err := fset.Parse(args); err != nil {
		return err
	}

	ws, _, err := openWorkspace(*root)
	if err != nil {
		return err
	}

	snaps := ws.Log.List(snapshot.ListOptions{Limit: *limit, IncludeDiffs: *diffs || *interactive})

	if *interactive {
		return browser.Run(snaps)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tTOOL\tFILES\tGOAL")
	for _, s := range snaps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.SequenceNumber, s.Tool, joinFiles(s.AffectedFiles), s.Goal)
	}
	return w.Flush()
}

func joinFiles(files []string) string {
	switch len(files) {
	case 0:
		return "-"
	case 1:
		return files[0]
	default:
		return fmt.Sprintf("%s (+%d)", files[0], len(files)-1)
	}
}
