package diffengine

import (
	"strings"
	"testing"
)

func TestGenerate_Creation(t *testing.T) {
	diff := Generate("", "agi is coming\n", GenerateOptions{OldPath: "text.txt", NewPath: "text.txt"})

	if !strings.Contains(diff, "--- /dev/null\n") {
		t.Fatalf("expected /dev/null old header, got:\n%s", diff)
	}
	if !strings.Contains(diff, "+++ b/text.txt\n") {
		t.Fatalf("expected b/text.txt new header, got:\n%s", diff)
	}
	if !strings.Contains(diff, "@@ -1,0 +1,1 @@\n") {
		t.Fatalf("expected creation hunk header, got:\n%s", diff)
	}
	if !strings.Contains(diff, "+agi is coming\n") {
		t.Fatalf("expected addition line, got:\n%s", diff)
	}
	if !strings.HasSuffix(diff, "\n") {
		t.Fatalf("diff must end with a newline")
	}
}

func TestGenerate_Deletion(t *testing.T) {
	diff := Generate("bye\n", "", GenerateOptions{OldPath: "gone.txt", NewPath: "gone.txt"})

	if !strings.Contains(diff, "+++ /dev/null\n") {
		t.Fatalf("expected /dev/null new header, got:\n%s", diff)
	}
	if !strings.Contains(diff, "-bye\n") {
		t.Fatalf("expected deletion line, got:\n%s", diff)
	}
}

func TestGenerate_Modification(t *testing.T) {
	old := "agi is coming\n"
	new := "agi is here\n"
	diff := Generate(old, new, GenerateOptions{OldPath: "text.txt", NewPath: "text.txt"})

	if !strings.Contains(diff, "-agi is coming\n") || !strings.Contains(diff, "+agi is here\n") {
		t.Fatalf("expected one removal and one addition, got:\n%s", diff)
	}

	fds, err := ParseMultiFileDiff(diff)
	if err != nil {
		t.Fatalf("ParseMultiFileDiff: %v", err)
	}
	if len(fds) != 1 {
		t.Fatalf("expected 1 file diff, got %d", len(fds))
	}
	if got := CountDiffChanges(fds[0]); got != 2 {
		t.Fatalf("expected 2 changed lines, got %d", got)
	}
}

func TestGenerate_MultiHunk(t *testing.T) {
	old := strings.Join([]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, "\n") + "\n"
	new := strings.Join([]string{"A", "b", "c", "d", "e", "f", "g", "h", "i", "J"}, "\n") + "\n"

	diff := Generate(old, new, GenerateOptions{OldPath: "f.txt", NewPath: "f.txt", ContextLines: 1})

	fds, err := ParseMultiFileDiff(diff)
	if err != nil {
		t.Fatalf("ParseMultiFileDiff: %v", err)
	}
	if len(fds[0].Hunks) != 2 {
		t.Fatalf("expected 2 disjoint hunks for edits at both ends, got %d:\n%s", len(fds[0].Hunks), diff)
	}
}

func TestGenerate_NoTrailingNewlineSentinel(t *testing.T) {
	diff := Generate("one", "one two", GenerateOptions{OldPath: "f.txt", NewPath: "f.txt"})
	if !strings.Contains(diff, "\\ No newline at end of file\n") {
		t.Fatalf("expected no-newline sentinel, got:\n%s", diff)
	}
}

func TestGenerate_GitHashPreamble(t *testing.T) {
	diff := Generate("a\n", "b\n", GenerateOptions{
		OldPath: "f.txt",
		NewPath: "f.txt",
		Git:     &GitOptions{IncludeHash: true},
	})
	if !strings.HasPrefix(diff, "diff --git a/f.txt b/f.txt\n") {
		t.Fatalf("expected diff --git preamble, got:\n%s", diff)
	}
	if !strings.Contains(diff, "index "+ShortHash("a\n")+".."+ShortHash("b\n")+" 100644\n") {
		t.Fatalf("expected index line with short hashes, got:\n%s", diff)
	}
}
