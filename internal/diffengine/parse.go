package diffengine

import (
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// ParseMultiFileDiff splits text on `--- ` file headers and returns one
// FileDiff per file section, stripping any preceding `diff --git`/`index`
// preamble lines into the FileDiff's git-hash fields.
func ParseMultiFileDiff(text string) ([]*FileDiff, error) {
	if !strings.Contains(text, "--- ") {
		return nil, nil
	}

	sgFiles, err := sgdiff.ParseMultiFileDiff([]byte(text))
	if err != nil {
		return nil, newValidationError("failed to parse diff: "+err.Error(), []string{err.Error()})
	}

	out := make([]*FileDiff, 0, len(sgFiles))
	for _, sf := range sgFiles {
		out = append(out, convertSGFileDiff(sf))
	}
	return out, nil
}

// ParseFileDiff parses a single-file unified diff.
func ParseFileDiff(text string) (*FileDiff, error) {
	sf, err := sgdiff.ParseFileDiff([]byte(text))
	if err != nil {
		return nil, newValidationError("failed to parse diff: "+err.Error(), []string{err.Error()})
	}
	return convertSGFileDiff(sf), nil
}

func convertSGFileDiff(sf *sgdiff.FileDiff) *FileDiff {
	fd := &FileDiff{
		OldPath: sf.OrigName,
		NewPath: sf.NewName,
	}
	if sf.OrigTime != nil {
		fd.OldTimestamp = &GitTimestamp{Seconds: sf.OrigTime.Unix()}
	}
	if sf.NewTime != nil {
		fd.NewTimestamp = &GitTimestamp{Seconds: sf.NewTime.Unix()}
	}
	for _, ext := range sf.Extended {
		if strings.HasPrefix(ext, "diff --git") {
			fd.HasGitHash = true
			fields := strings.Fields(ext)
			if len(fields) >= 3 {
				fd.GitPath = ExtractFilePath(fields[2])
			}
		}
		if strings.HasPrefix(ext, "index ") {
			body := strings.TrimPrefix(ext, "index ")
			body = strings.Fields(body)[0]
			parts := strings.SplitN(body, "..", 2)
			if len(parts) == 2 {
				fd.GitHashOld = parts[0]
				fd.GitHashNew = strings.TrimSuffix(parts[1], " 100644")
				fd.GitHashNew = strings.Fields(fd.GitHashNew)[0]
			}
		}
	}

	for _, h := range sf.Hunks {
		hunk := Hunk{
			OldStart: int(h.OrigStartLine),
			OldCount: int(h.OrigLines),
			NewStart: int(h.NewStartLine),
			NewCount: int(h.NewLines),
			Lines:    parseHunkBody(h.Body),
		}
		fd.Hunks = append(fd.Hunks, hunk)
	}
	return fd
}

// parseHunkBody splits a raw hunk body (as returned by sourcegraph/go-diff)
// into DiffLines, folding `\ No newline at end of file` sentinel lines
// into the preceding line's NoNewlineAfter flag.
func parseHunkBody(body []byte) []DiffLine {
	text := string(body)
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	rawLines := strings.Split(text, "\n")

	lines := make([]DiffLine, 0, len(rawLines))
	for _, raw := range rawLines {
		if strings.HasPrefix(raw, "\\ No newline at end of file") {
			if len(lines) > 0 {
				lines[len(lines)-1].NoNewlineAfter = true
			}
			continue
		}
		if raw == "" {
			continue
		}
		tag := LineTag(raw[0])
		content := ""
		if len(raw) > 1 {
			content = raw[1:]
		}
		lines = append(lines, DiffLine{Tag: tag, Text: content})
	}
	return lines
}
