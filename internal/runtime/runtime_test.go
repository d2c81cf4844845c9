package runtime

import (
	"context"
	"strings"
	"testing"

	"github.com/patchloom/patchloom/internal/config"
	"github.com/patchloom/patchloom/internal/fs"
)

func newTestRuntime() *Runtime {
	return New(fs.NewMockFS(), "/ws", config.Default())
}

func TestWriteFile_CreateOrOverwrite(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	res, err := rt.WriteFile(ctx, "a.txt", "agi is coming", WriteOptions{Mode: ModeCreateOrOverwrite})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !res.Success || !strings.Contains(res.Diff, "@@ -1,0 +1,1 @@") {
		t.Fatalf("unexpected result: %+v", res)
	}

	content, err := rt.ReadFile(ctx, "a.txt", ReadOptions{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if content != "agi is coming" {
		t.Fatalf("got %q", content)
	}
}

func TestWriteFile_OverwriteMissingFails(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "missing.txt", "x", WriteOptions{Mode: ModeOverwrite}); err == nil {
		t.Fatalf("expected error overwriting missing file")
	}
}

func TestWriteFile_AppendOmitsDiffForExistingFile(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "log.txt", "first\n", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	res, err := rt.WriteFile(ctx, "log.txt", "second\n", WriteOptions{Mode: ModeAppend})
	if err != nil {
		t.Fatalf("WriteFile append: %v", err)
	}
	if res.Diff != "" {
		t.Fatalf("expected no diff for append to an existing file, got %q", res.Diff)
	}

	content, _ := rt.ReadFile(ctx, "log.txt", ReadOptions{})
	if content != "first\nsecond\n" {
		t.Fatalf("got %q", content)
	}
}

func TestWriteFile_AppendIncludesDiffForNewFile(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	res, err := rt.WriteFile(ctx, "new-log.txt", "first\n", WriteOptions{Mode: ModeAppend})
	if err != nil {
		t.Fatalf("WriteFile append: %v", err)
	}
	if res.Diff == "" {
		t.Fatalf("expected a diff when append creates the file")
	}
}

func TestApplyEditBlock_CreatesOnEmptySearch(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	res, err := rt.ApplyEditBlock(ctx, "new.txt", "", "hello", false)
	if err != nil {
		t.Fatalf("ApplyEditBlock: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
}

func TestApplyEditBlock_FirstOccurrenceOnly(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "dup.txt", "foo\nfoo\n", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	res, err := rt.ApplyEditBlock(ctx, "dup.txt", "foo", "bar", false)
	if err != nil {
		t.Fatalf("ApplyEditBlock: %v", err)
	}
	content, _ := rt.ReadFile(ctx, "dup.txt", ReadOptions{})
	if content != "bar\nfoo\n" {
		t.Fatalf("expected only first occurrence replaced, got %q (success=%v)", content, res.Success)
	}
}

func TestApplyEditBlock_NotFound(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "f.txt", "hello", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}
	if _, err := rt.ApplyEditBlock(ctx, "f.txt", "nope", "x", false); err == nil {
		t.Fatalf("expected SearchBlockNotFound")
	} else if _, ok := err.(*SearchBlockNotFoundError); !ok {
		t.Fatalf("expected *SearchBlockNotFoundError, got %T", err)
	}
}

func TestApplyEditBlock_IgnoreWhitespace(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "w.txt", "func  foo( )  {\n}\n", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}
	if _, err := rt.ApplyEditBlock(ctx, "w.txt", "func foo() {", "func bar() {", true); err != nil {
		t.Fatalf("ApplyEditBlock with ignore_whitespace: %v", err)
	}
}

func TestApplyRangedEdit_Append(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "r.txt", "a\nb", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}
	res, err := rt.ApplyRangedEdit(ctx, "r.txt", "c", -1, -1)
	if err != nil {
		t.Fatalf("ApplyRangedEdit: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success")
	}
	content, _ := rt.ReadFile(ctx, "r.txt", ReadOptions{})
	if content != "a\nb\nc" {
		t.Fatalf("got %q", content)
	}
}

func TestApplyRangedEdit_EndOfFile(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "r2.txt", "a\nb\nc\nd", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}
	res, err := rt.ApplyRangedEdit(ctx, "r2.txt", "z", 2, -1)
	if err != nil {
		t.Fatalf("ApplyRangedEdit: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success")
	}
	content, _ := rt.ReadFile(ctx, "r2.txt", ReadOptions{})
	if content != "a\nz" {
		t.Fatalf("end=-1 should replace through end-of-file, got %q", content)
	}
}

func TestApplyRangedEdit_InvalidRange(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.ApplyRangedEdit(ctx, "z.txt", "x", 0, 1); err == nil {
		t.Fatalf("expected InvalidRangeError")
	}
}

func TestValidateFile_ValidGo(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "main.go", "package main\n\nfunc main() {}\n", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	result, err := rt.ValidateFile(ctx, "main.go")
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid Go source, got errors: %+v", result.Errors)
	}
}

func TestValidateFile_InvalidGo(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "broken.go", "package main\n\nfunc main( {\n", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	result, err := rt.ValidateFile(ctx, "broken.go")
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected malformed Go source to be flagged invalid")
	}
}

func TestDeleteFile(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "d.txt", "bye", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}
	res, err := rt.DeleteFile(ctx, "d.txt", false)
	if err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if !strings.Contains(res.Diff, "-bye") {
		t.Fatalf("expected pre->empty diff, got %q", res.Diff)
	}
}

func TestApplyUnifiedDiff_Modification(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "x.txt", "one\ntwo\nthree", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	diffText := "--- a/x.txt\n+++ b/x.txt\n@@ -1,3 +1,3 @@\n one\n-two\n+TWO\n three\n"

	res, err := rt.ApplyUnifiedDiff(ctx, diffText, ApplyDiffOptions{})
	if err != nil {
		t.Fatalf("ApplyUnifiedDiff: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success: %+v", res.PerFileResults)
	}

	content, _ := rt.ReadFile(ctx, "x.txt", ReadOptions{})
	if content != "one\nTWO\nthree" {
		t.Fatalf("got %q", content)
	}
}

func TestApplyUnifiedDiff_DryRunDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "y.txt", "one\ntwo", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	diffText := "--- a/y.txt\n+++ b/y.txt\n@@ -1,2 +1,2 @@\n one\n-two\n+TWO\n"

	if _, err := rt.ApplyUnifiedDiff(ctx, diffText, ApplyDiffOptions{DryRun: true}); err != nil {
		t.Fatalf("ApplyUnifiedDiff dry run: %v", err)
	}

	content, _ := rt.ReadFile(ctx, "y.txt", ReadOptions{})
	if content != "one\ntwo" {
		t.Fatalf("dry run mutated file: %q", content)
	}
}

func TestReverseApplyUnifiedDiff(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime()

	if _, err := rt.WriteFile(ctx, "z.txt", "one\nTWO\nthree", WriteOptions{Mode: ModeCreateOrOverwrite}); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	diffText := "--- a/z.txt\n+++ b/z.txt\n@@ -1,3 +1,3 @@\n one\n-two\n+TWO\n three\n"

	if _, err := rt.ReverseApplyUnifiedDiff(ctx, diffText, ApplyDiffOptions{}); err != nil {
		t.Fatalf("ReverseApplyUnifiedDiff: %v", err)
	}

	content, _ := rt.ReadFile(ctx, "z.txt", ReadOptions{})
	if content != "one\ntwo\nthree" {
		t.Fatalf("got %q", content)
	}
}
