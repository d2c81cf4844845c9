package diffengine

import (
	"strings"
	"testing"
)

func TestReverseDiff_SwapsHeadersAndTags(t *testing.T) {
	diff := Generate("agi is coming\n", "agi is here\n", GenerateOptions{OldPath: "text.txt", NewPath: "text.txt"})

	res, err := ReverseDiff(diff, ReverseOptions{})
	if err != nil {
		t.Fatalf("ReverseDiff: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, conflicts: %v", res.Conflicts)
	}
	if !strings.Contains(res.ReversedDiff, "-agi is here\n") || !strings.Contains(res.ReversedDiff, "+agi is coming\n") {
		t.Fatalf("expected inverted lines, got:\n%s", res.ReversedDiff)
	}

	roundTrip, err := ReverseDiff(res.ReversedDiff, ReverseOptions{})
	if err != nil {
		t.Fatalf("ReverseDiff (round trip): %v", err)
	}
	if !strings.Contains(roundTrip.ReversedDiff, "-agi is coming\n") || !strings.Contains(roundTrip.ReversedDiff, "+agi is here\n") {
		t.Fatalf("expected round trip to restore original tags, got:\n%s", roundTrip.ReversedDiff)
	}
}

func TestReverseDiff_CreationBecomesDeletion(t *testing.T) {
	diff := Generate("", "new content\n", GenerateOptions{OldPath: "new.txt", NewPath: "new.txt"})

	res, err := ReverseDiff(diff, ReverseOptions{})
	if err != nil {
		t.Fatalf("ReverseDiff: %v", err)
	}
	fds, err := ParseMultiFileDiff(res.ReversedDiff)
	if err != nil {
		t.Fatalf("ParseMultiFileDiff: %v", err)
	}
	if !IsFileDeletion(fds[0]) {
		t.Fatalf("expected reversed creation diff to be a deletion:\n%s", res.ReversedDiff)
	}
}

func TestReverseDiff_FileFilter(t *testing.T) {
	a := Generate("1\n", "2\n", GenerateOptions{OldPath: "a.txt", NewPath: "a.txt"})
	b := Generate("3\n", "4\n", GenerateOptions{OldPath: "b.txt", NewPath: "b.txt"})
	combined := a + b

	res, err := ReverseDiff(combined, ReverseOptions{IncludeFiles: []string{"a.txt"}})
	if err != nil {
		t.Fatalf("ReverseDiff: %v", err)
	}
	if len(res.AffectedFiles) != 1 || res.AffectedFiles[0] != "a.txt" {
		t.Fatalf("expected only a.txt affected, got %v", res.AffectedFiles)
	}
	if strings.Contains(res.ReversedDiff, "b.txt") {
		t.Fatalf("expected b.txt to be filtered out:\n%s", res.ReversedDiff)
	}
}
