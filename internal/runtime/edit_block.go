package runtime

import (
	"context"
	"strings"

	"github.com/patchloom/patchloom/internal/diffengine"
)

// ApplyEditBlock performs a search/replace edit: the first exact
// occurrence of search in the file's current content is replaced with
// replace. An empty search against an absent file creates it with
// replace as its full content.
func (r *Runtime) ApplyEditBlock(ctx context.Context, path, search, replace string, ignoreWhitespace bool) (*EditResult, error) {
	abs, err := r.resolve(path)
	if err != nil {
		return nil, err
	}

	exists, err := r.fs.Exists(ctx, abs)
	if err != nil {
		return nil, classifyIOErr(path, err)
	}

	if search == "" && !exists {
		if err := r.ensureParentDir(ctx, abs); err != nil {
			return nil, err
		}
		if err := r.fs.WriteFile(ctx, abs, []byte(replace)); err != nil {
			return nil, classifyIOErr(path, err)
		}
		diff := diffengine.Generate("", replace, diffengine.GenerateOptions{OldPath: path, NewPath: path})
		return &EditResult{
			Success:        true,
			Message:        "created " + path,
			Diff:           diff,
			ChangesApplied: 1,
			AffectedFiles:  []string{path},
			SyntaxWarnings: r.validateSyntax(path, replace),
		}, nil
	}

	if !exists {
		return nil, &NotFoundError{Path: path}
	}

	if unsupported, uerr := r.checkSupported(ctx, abs, path); unsupported {
		return nil, uerr
	}

	data, err := r.fs.ReadFile(ctx, abs)
	if err != nil {
		return nil, classifyIOErr(path, err)
	}
	content := string(data)

	start, matchLen, found := locateSearchBlock(content, search, ignoreWhitespace)
	if !found {
		return nil, &SearchBlockNotFoundError{Path: path}
	}

	after := content[:start] + replace + content[start+matchLen:]

	if err := r.fs.WriteFile(ctx, abs, []byte(after)); err != nil {
		return nil, classifyIOErr(path, err)
	}

	diff := diffengine.Generate(content, after, diffengine.GenerateOptions{OldPath: path, NewPath: path})
	return &EditResult{
		Success:        true,
		Message:        "updated " + path,
		Diff:           diff,
		ChangesApplied: 1,
		AffectedFiles:  []string{path},
		SyntaxWarnings: r.validateSyntax(path, after),
	}, nil
}

// locateSearchBlock finds the first occurrence of search in content. With
// ignoreWhitespace, runs of whitespace in both search and the scanned
// window are collapsed to a single space before comparing, but the
// returned offsets still index into the original, uncollapsed content.
func locateSearchBlock(content, search string, ignoreWhitespace bool) (start, matchLen int, found bool) {
	if !ignoreWhitespace {
		idx := strings.Index(content, search)
		if idx < 0 {
			return 0, 0, false
		}
		return idx, len(search), true
	}

	normSearch := collapseWhitespace(search)
	if normSearch == "" {
		return 0, 0, false
	}

	for i := range content {
		end, ok := matchCollapsed(content[i:], normSearch)
		if ok {
			return i, end, true
		}
	}
	return 0, 0, false
}

// matchCollapsed checks whether window, read from its start and with its
// whitespace collapsed, begins with norm. It returns the number of raw
// bytes in window consumed by the match.
func matchCollapsed(window, norm string) (consumed int, ok bool) {
	var ni int
	i := 0
	for i < len(window) {
		c := window[i]
		if isSpaceByte(c) {
			runEnd := i
			for runEnd < len(window) && isSpaceByte(window[runEnd]) {
				runEnd++
			}
			if ni >= len(norm) || norm[ni] != ' ' {
				return 0, false
			}
			ni++
			i = runEnd
			continue
		}
		if ni >= len(norm) {
			return i, true
		}
		if norm[ni] != c {
			return 0, false
		}
		ni++
		i++
	}
	if ni == len(norm) {
		return i, true
	}
	return 0, false
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
