package secretdetect

import (
	"strconv"
	"strings"
)

// ScanDiff scans only the lines a unified diff actually introduces: lines
// prefixed with "+" inside a hunk. Context and removed ("-") lines are
// skipped, since a secret a diff deletes or merely shows as context is not
// a newly introduced exposure. Reported LineNumber/FilePath reflect the
// new file's coordinates, taken from each hunk's "@@ -a,b +c,d @@" header
// and the destination path from the diff's "+++" header.
func ScanDiff(d Detector, diffText string) []SecretMatch {
	var matches []SecretMatch

	path := ""
	newLine := 0
	inHunk := false

	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "+++ "):
			path = strings.TrimPrefix(strings.TrimPrefix(line, "+++ "), "b/")
			inHunk = false

		case strings.HasPrefix(line, "--- "):
			inHunk = false

		case strings.HasPrefix(line, "@@ "):
			newLine = hunkNewStart(line)
			inHunk = newLine > 0

		case !inHunk:
			// Between files, or a malformed/missing hunk header; nothing to
			// scan until the next "@@ " line puts us back in a hunk.
			continue

		case strings.HasPrefix(line, "+"):
			added := strings.TrimPrefix(line, "+")
			for _, m := range d.Scan(added) {
				m.LineNumber = newLine
				m.FilePath = path
				matches = append(matches, m)
			}
			for _, token := range TokenizeAndCheckEntropy(added, DefaultEntropyThreshold) {
				matches = append(matches, SecretMatch{
					PatternName: "High Entropy String",
					MatchedText: token,
					LineNumber:  newLine,
					FilePath:    path,
					Confidence:  0.5,
				})
			}
			newLine++

		case strings.HasPrefix(line, "-"):
			// deletions don't advance the new-file line counter.

		default:
			// context line
			newLine++
		}
	}

	return matches
}

// hunkNewStart parses the "+c,d" (or "+c") portion of a "@@ -a,b +c,d @@"
// hunk header and returns c, the first new-file line number in the hunk.
// Returns 0 if the header can't be parsed.
func hunkNewStart(header string) int {
	plus := strings.Index(header, "+")
	if plus == -1 {
		return 0
	}
	rest := header[plus+1:]
	if end := strings.IndexAny(rest, ", @"); end != -1 {
		rest = rest[:end]
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return n
}
