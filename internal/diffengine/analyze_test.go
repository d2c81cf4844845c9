package diffengine

import "testing"

func TestAnalyzePatchResult_Success(t *testing.T) {
	a := AnalyzePatchResult(0, "", "", "@@ -1,1 +1,1 @@\n-a\n+b\n", "f.txt")
	if !a.Success {
		t.Fatalf("expected success")
	}
}

func TestAnalyzePatchResult_MalformedPatch(t *testing.T) {
	a := AnalyzePatchResult(1, "", "patch: malformed patch at line 12", "@@ -1,1 +1,1 @@\n-a\n+b\n", "f.txt")
	if a.Success {
		t.Fatalf("expected failure")
	}
	if a.DetailedError == "" {
		t.Fatalf("expected detailed error")
	}
}

func TestAnalyzePatchResult_FailedHunks(t *testing.T) {
	a := AnalyzePatchResult(1, "", "2 out of 3 hunks failed -- saving rejects", "@@ -1,1 +1,1 @@\n-a\n+b\n", "f.txt")
	if a.FailedHunks != 2 {
		t.Fatalf("expected 2 failed hunks, got %d", a.FailedHunks)
	}
}

func TestAnalyzePatchResult_TargetNotFound(t *testing.T) {
	a := AnalyzePatchResult(1, "", "can't find file to patch", "@@ -1,1 +1,1 @@\n-a\n+b\n", "missing.txt")
	if a.Success {
		t.Fatalf("expected failure")
	}
}
