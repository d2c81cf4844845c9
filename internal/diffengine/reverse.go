package diffengine

import "strings"

// ReverseDiff produces the diff that, applied to the post-state of text,
// restores its pre-state: swap `---`/`+++`, invert each line's tag, and
// swap each hunk header's old/new counts.
func ReverseDiff(text string, opts ReverseOptions) (*ReverseResult, error) {
	fds, err := ParseMultiFileDiff(text)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	var affected []string
	var conflicts []string

	for _, fd := range fds {
		path := ExtractFilePath(fd.NewPath)
		if path == "" {
			path = ExtractFilePath(fd.OldPath)
		}
		if !passesFilter(path, opts.IncludeFiles, opts.ExcludeFiles) {
			continue
		}

		if opts.CheckConflicts {
			if c := detectReverseConflict(fd); c != "" {
				conflicts = append(conflicts, c)
			}
		}

		reversed := reverseFileDiff(fd)
		b.WriteString(printFileDiff(reversed))
		affected = append(affected, path)
	}

	return &ReverseResult{
		Success:       len(conflicts) == 0,
		ReversedDiff:  b.String(),
		AffectedFiles: affected,
		Conflicts:     conflicts,
	}, nil
}

func reverseFileDiff(fd *FileDiff) *FileDiff {
	out := &FileDiff{
		OldPath:      fd.NewPath,
		NewPath:      fd.OldPath,
		OldTimestamp: fd.NewTimestamp,
		NewTimestamp: fd.OldTimestamp,
		GitHashOld:   fd.GitHashNew,
		GitHashNew:   fd.GitHashOld,
		GitPath:      fd.GitPath,
		HasGitHash:   fd.HasGitHash,
	}
	for _, h := range fd.Hunks {
		rh := Hunk{
			OldStart: h.NewStart,
			OldCount: h.NewCount,
			NewStart: h.OldStart,
			NewCount: h.OldCount,
		}
		for _, l := range h.Lines {
			rl := l
			switch l.Tag {
			case TagAdd:
				rl.Tag = TagDel
			case TagDel:
				rl.Tag = TagAdd
			}
			rh.Lines = append(rh.Lines, rl)
		}
		out.Hunks = append(out.Hunks, rh)
	}
	return out
}

func passesFilter(path string, include, exclude []string) bool {
	if len(include) > 0 && !contains(include, path) {
		return false
	}
	if contains(exclude, path) {
		return false
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// detectReverseConflict reports a non-empty description when a file diff
// cannot be safely reversed because of structural ambiguity (no hunks at
// all on a non-deletion file diff — nothing to reverse against).
func detectReverseConflict(fd *FileDiff) string {
	if len(fd.Hunks) == 0 && fd.OldPath != "/dev/null" && fd.NewPath != "/dev/null" {
		return "file diff for " + ExtractFilePath(fd.NewPath) + " has no hunks to reverse"
	}
	return ""
}
