package diffengine

import "testing"

func TestParseMultiFileDiff_Empty(t *testing.T) {
	fds, err := ParseMultiFileDiff("not a diff at all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fds) != 0 {
		t.Fatalf("expected no file diffs, got %d", len(fds))
	}
}

func TestParseMultiFileDiff_TwoFiles(t *testing.T) {
	diff := "--- a/one.txt\n+++ b/one.txt\n@@ -1,1 +1,1 @@\n-1\n+2\n" +
		"--- a/two.txt\n+++ b/two.txt\n@@ -1,1 +1,1 @@\n-3\n+4\n"

	fds, err := ParseMultiFileDiff(diff)
	if err != nil {
		t.Fatalf("ParseMultiFileDiff: %v", err)
	}
	if len(fds) != 2 {
		t.Fatalf("expected 2 file diffs, got %d", len(fds))
	}
	if ExtractFilePath(fds[0].NewPath) != "one.txt" || ExtractFilePath(fds[1].NewPath) != "two.txt" {
		t.Fatalf("unexpected paths: %q %q", fds[0].NewPath, fds[1].NewPath)
	}
}

func TestExtractFilePath(t *testing.T) {
	cases := map[string]string{
		"a/main.go": "main.go",
		"b/main.go": "main.go",
		"/dev/null": "",
		"":          "",
		"main.go":   "main.go",
	}
	for in, want := range cases {
		if got := ExtractFilePath(in); got != want {
			t.Errorf("ExtractFilePath(%q) = %q, want %q", in, got, want)
		}
	}
}
