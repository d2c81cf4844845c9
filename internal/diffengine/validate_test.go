package diffengine

import "testing"

func TestValidateFormat_Valid(t *testing.T) {
	diff := Generate("a\n", "b\n", GenerateOptions{OldPath: "f.txt", NewPath: "f.txt"})
	res := ValidateFormat(diff)
	if !res.IsValid {
		t.Fatalf("expected valid, got errors: %v\ndiff:\n%s", res.Errors, diff)
	}
}

func TestValidateFormat_RejectsCRLF(t *testing.T) {
	diff := Generate("a\n", "b\n", GenerateOptions{OldPath: "f.txt", NewPath: "f.txt"})
	diff = "--- a/f.txt\r\n" + diff[len("--- a/f.txt\n"):]
	res := ValidateFormat(diff)
	if res.IsValid {
		t.Fatalf("expected CRLF to be rejected")
	}
}

func TestValidateFormat_MissingPlusPlusPlus(t *testing.T) {
	bad := "--- a/f.txt\n@@ -1,1 +1,1 @@\n-a\n+b\n"
	res := ValidateFormat(bad)
	if res.IsValid {
		t.Fatalf("expected missing +++ header to fail validation")
	}
}

func TestValidateFormat_MalformedHunkHeader(t *testing.T) {
	bad := "--- a/f.txt\n+++ b/f.txt\n@@ bogus @@\n-a\n+b\n"
	res := ValidateFormat(bad)
	if res.IsValid {
		t.Fatalf("expected malformed hunk header to fail validation")
	}
}

func TestValidateFormat_HunkCountMismatch(t *testing.T) {
	bad := "--- a/f.txt\n+++ b/f.txt\n@@ -1,5 +1,1 @@\n-a\n+b\n"
	res := ValidateFormat(bad)
	if res.IsValid {
		t.Fatalf("expected declared/actual hunk line count mismatch to fail validation")
	}
}

func TestValidateFormat_AcceptsNoNewlineSentinel(t *testing.T) {
	diff := "--- a/f.txt\n+++ b/f.txt\n@@ -1,1 +1,1 @@\n-a\n\\ No newline at end of file\n+b\n"
	res := ValidateFormat(diff)
	if !res.IsValid {
		t.Fatalf("expected sentinel line to be accepted, got errors: %v", res.Errors)
	}
}
