package diffengine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	malformedAtLineRe = regexp.MustCompile(`(?i)malformed patch at line (\d+)`)
	failedHunksRe     = regexp.MustCompile(`(?i)(\d+) out of (\d+) hunks? failed`)
	targetNotFoundRe  = regexp.MustCompile(`(?i)(no such file or directory|can't find file to patch|does not exist)`)
)

// AnalyzePatchResult classifies the outcome of an external patch-tool
// invocation (patch(1), git apply) against the diff that was applied.
func AnalyzePatchResult(exitCode int, stdout, stderr, diff, target string) PatchAnalysis {
	combined := stdout + "\n" + stderr

	a := PatchAnalysis{
		Success:        exitCode == 0,
		TotalDiffLines: len(strings.Split(strings.TrimRight(diff, "\n"), "\n")),
		HunkCount:      strings.Count(diff, "\n@@ ") + boolToInt(strings.HasPrefix(diff, "@@ ")),
	}

	if a.Success {
		return a
	}

	var parts []string
	if m := malformedAtLineRe.FindStringSubmatch(combined); m != nil {
		parts = append(parts, fmt.Sprintf("malformed patch at line %s", m[1]))
	}
	if m := failedHunksRe.FindStringSubmatch(combined); m != nil {
		failed, _ := strconv.Atoi(m[1])
		a.FailedHunks = failed
		parts = append(parts, fmt.Sprintf("%s out of %s hunks failed", m[1], m[2]))
	}
	if targetNotFoundRe.MatchString(combined) {
		parts = append(parts, fmt.Sprintf("target not found: %s", target))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("patch tool exited with code %d", exitCode))
	}

	parts = append(parts, fmt.Sprintf("diff had %d line(s) across %d hunk(s)", a.TotalDiffLines, a.HunkCount))
	a.DetailedError = strings.Join(parts, "; ")
	return a
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
