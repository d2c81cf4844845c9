package diffengine

import (
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const defaultContextLines = 3

// Generate produces a canonical unified diff between old and new content.
// It always ends with exactly one trailing newline.
func Generate(old, new string, opts GenerateOptions) string {
	fd := computeFileDiff(old, new, opts)
	return printFileDiff(fd)
}

// computeFileDiff runs the line-level diff and groups the result into
// context hunks, without any dialect-specific text formatting.
func computeFileDiff(old, new string, opts GenerateOptions) *FileDiff {
	contextLines := opts.ContextLines
	if contextLines <= 0 {
		contextLines = defaultContextLines
	}

	dmp := diffmatchpatch.New()
	oldChars, newChars, lineArray := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffMain(oldChars, newChars, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	ops := diffsToOps(diffs)
	hunks := groupIntoHunks(ops, contextLines)

	oldPath := opts.OldPath
	newPath := opts.NewPath

	fd := &FileDiff{Hunks: hunks}
	fd.OldPath = headerPath(oldPath, "a/", old == "")
	fd.NewPath = headerPath(newPath, "b/", new == "")

	if opts.Git != nil {
		fd.HasGitHash = opts.Git.IncludeHash
		if opts.Git.IncludeHash {
			gitPath := newPath
			if gitPath == "" {
				gitPath = oldPath
			}
			fd.GitPath = gitPath
			fd.GitHashOld = opts.Git.OldHash
			if fd.GitHashOld == "" {
				fd.GitHashOld = ShortHash(old)
			}
			fd.GitHashNew = opts.Git.NewHash
			if fd.GitHashNew == "" {
				fd.GitHashNew = ShortHash(new)
			}
		}
		if opts.Git.UseGitTimestamp {
			now := GitNow()
			if old != "" {
				fd.OldTimestamp = now
			}
			if new != "" {
				fd.NewTimestamp = now
			}
		}
	}

	markNoNewlineSentinels(fd, old, new)
	return fd
}

func headerPath(path, prefix string, absent bool) string {
	if absent {
		return "/dev/null"
	}
	return prefix + path
}

// op is one physical line produced by the line-level diff, tagged with the
// 1-indexed old/new line numbers it corresponds to (0 when not applicable
// to that side).
type op struct {
	tag     LineTag
	oldLine int
	newLine int
	text    string
}

func diffsToOps(diffs []diffmatchpatch.Diff) []op {
	ops := make([]op, 0, len(diffs)*2)
	oldLine, newLine := 1, 1

	for _, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			for _, l := range lines {
				ops = append(ops, op{tag: TagContext, oldLine: oldLine, newLine: newLine, text: l})
				oldLine++
				newLine++
			}
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				ops = append(ops, op{tag: TagDel, oldLine: oldLine, text: l})
				oldLine++
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				ops = append(ops, op{tag: TagAdd, newLine: newLine, text: l})
				newLine++
			}
		}
	}
	return ops
}

// splitLines splits s on "\n", dropping a trailing empty element produced
// by a final newline (DiffLinesToChars always hands us whole lines).
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func groupIntoHunks(ops []op, contextLines int) []Hunk {
	if len(ops) == 0 {
		return nil
	}

	changedIdx := make([]bool, len(ops))
	anyChanged := false
	for i, o := range ops {
		if o.tag != TagContext {
			changedIdx[i] = true
			anyChanged = true
		}
	}
	if !anyChanged {
		return nil
	}

	type span struct{ lo, hi int } // inclusive op indices to include in a hunk
	var spans []span
	i := 0
	for i < len(ops) {
		if !changedIdx[i] {
			i++
			continue
		}
		// find end of this changed run
		j := i
		for j < len(ops) && changedIdx[j] {
			j++
		}
		lo := i - contextLines
		if lo < 0 {
			lo = 0
		}
		hi := j - 1 + contextLines
		if hi > len(ops)-1 {
			hi = len(ops) - 1
		}
		if len(spans) > 0 && lo <= spans[len(spans)-1].hi+1 {
			spans[len(spans)-1].hi = hi
		} else {
			spans = append(spans, span{lo, hi})
		}
		i = j
	}

	hunks := make([]Hunk, 0, len(spans))
	for _, s := range spans {
		var h Hunk
		h.Lines = make([]DiffLine, 0, s.hi-s.lo+1)
		oldStart, newStart := 0, 0
		for k := s.lo; k <= s.hi; k++ {
			o := ops[k]
			if oldStart == 0 && o.oldLine > 0 {
				oldStart = o.oldLine
			}
			if newStart == 0 && o.newLine > 0 {
				newStart = o.newLine
			}
			switch o.tag {
			case TagContext:
				h.OldCount++
				h.NewCount++
			case TagDel:
				h.OldCount++
			case TagAdd:
				h.NewCount++
			}
			h.Lines = append(h.Lines, DiffLine{Tag: o.tag, Text: o.text})
		}
		if oldStart == 0 {
			oldStart = 1
		}
		if newStart == 0 {
			newStart = 1
		}
		h.OldStart = oldStart
		h.NewStart = newStart
		hunks = append(hunks, h)
	}
	return hunks
}

// markNoNewlineSentinels flags the final DiffLine(s) touching old/new
// content when that content lacks a trailing newline.
func markNoNewlineSentinels(fd *FileDiff, old, new string) {
	if len(fd.Hunks) == 0 {
		return
	}
	oldNoFinalNL := old != "" && !strings.HasSuffix(old, "\n")
	newNoFinalNL := new != "" && !strings.HasSuffix(new, "\n")
	if !oldNoFinalNL && !newNoFinalNL {
		return
	}

	lastHunk := &fd.Hunks[len(fd.Hunks)-1]
	oldTotal, newTotal := lastHunk.OldStart-1, lastHunk.NewStart-1
	for idx := range lastHunk.Lines {
		l := &lastHunk.Lines[idx]
		switch l.Tag {
		case TagContext:
			oldTotal++
			newTotal++
		case TagDel:
			oldTotal++
		case TagAdd:
			newTotal++
		}
		isLastOld := oldNoFinalNL && l.Tag != TagAdd && oldTotal == countLines(old)
		isLastNew := newNoFinalNL && l.Tag != TagDel && newTotal == countLines(new)
		if isLastOld || isLastNew {
			l.NoNewlineAfter = true
		}
	}
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// printFileDiff renders fd in the dialect of §6: LF-only, git-style
// headers, `@@ -A,B +C,D @@` hunks.
func printFileDiff(fd *FileDiff) string {
	var b strings.Builder

	if fd.HasGitHash {
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", trimPrefix(fd.GitPath), trimPrefix(fd.GitPath))
		fmt.Fprintf(&b, "index %s..%s 100644\n", fd.GitHashOld, fd.GitHashNew)
	}

	writeHeader(&b, "--- ", fd.OldPath, fd.OldTimestamp)
	writeHeader(&b, "+++ ", fd.NewPath, fd.NewTimestamp)

	for _, h := range fd.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			b.WriteByte(byte(l.Tag))
			b.WriteString(l.Text)
			b.WriteByte('\n')
			if l.NoNewlineAfter {
				b.WriteString("\\ No newline at end of file\n")
			}
		}
	}

	return b.String()
}

func writeHeader(b *strings.Builder, prefix, path string, ts *GitTimestamp) {
	b.WriteString(prefix)
	b.WriteString(path)
	if ts != nil {
		fmt.Fprintf(b, "\t%d %s", ts.Seconds, formatOffset(ts.OffsetMinutes))
	}
	b.WriteByte('\n')
}

func trimPrefix(path string) string {
	return ExtractFilePath(path)
}

func formatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d%02d", sign, minutes/60, minutes%60)
}

// GitNow returns the current time as a GitTimestamp (UTC offset in
// minutes, local zone).
func GitNow() *GitTimestamp {
	now := time.Now()
	_, offsetSec := now.Zone()
	return &GitTimestamp{Seconds: now.Unix(), OffsetMinutes: offsetSec / 60}
}
