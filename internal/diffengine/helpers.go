package diffengine

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// ExtractFilePath strips a leading "a/" or "b/" prefix from a diff header
// path, or returns "" for the /dev/null marker.
func ExtractFilePath(headerPath string) string {
	if headerPath == "" || headerPath == "/dev/null" {
		return ""
	}
	if strings.HasPrefix(headerPath, "a/") || strings.HasPrefix(headerPath, "b/") {
		return headerPath[2:]
	}
	return headerPath
}

// IsFileCreation reports whether fd represents a new file: the old side is
// absent, or the sole hunk has an old count of zero.
func IsFileCreation(fd *FileDiff) bool {
	if fd.OldPath == "/dev/null" {
		return true
	}
	if len(fd.Hunks) == 1 && fd.Hunks[0].OldCount == 0 {
		return true
	}
	return false
}

// IsFileDeletion reports whether fd represents a file removal: the new
// side is absent, or the sole hunk has a new count of zero.
func IsFileDeletion(fd *FileDiff) bool {
	if fd.NewPath == "/dev/null" {
		return true
	}
	if len(fd.Hunks) == 1 && fd.Hunks[0].NewCount == 0 {
		return true
	}
	return false
}

// CountDiffChanges sums `+`/`-` lines across all hunks, excluding headers
// and context lines.
func CountDiffChanges(fd *FileDiff) int {
	n := 0
	for _, h := range fd.Hunks {
		for _, l := range h.Lines {
			if l.Tag == TagAdd || l.Tag == TagDel {
				n++
			}
		}
	}
	return n
}

// EnsureDiffLineEnding appends a trailing newline if text doesn't already
// end with one.
func EnsureDiffLineEnding(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

// ShortHash computes the 7-hex-digit short SHA-1 of content, the same
// convention git uses for `index OLD..NEW 100644` lines.
func ShortHash(content string) string {
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:])[:7]
}

// AddFileHashesToDiff retrofits a `diff --git`/`index` preamble onto a
// plain (header-only) unified diff for path, computing hashes from
// oldContent/newContent.
func AddFileHashesToDiff(text, path, oldContent, newContent string) string {
	oldHash := ShortHash(oldContent)
	newHash := ShortHash(newContent)
	preamble := "diff --git a/" + path + " b/" + path + "\n" +
		"index " + oldHash + ".." + newHash + " 100644\n"

	idx := strings.Index(text, "--- ")
	if idx < 0 {
		return preamble + text
	}
	return text[:idx] + preamble + text[idx:]
}
