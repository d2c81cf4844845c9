package snapshot

import (
	"sort"
	"sync"
	"time"

	"github.com/patchloom/patchloom/internal/diffengine"
	"github.com/patchloom/patchloom/internal/logger"
)

type knownFile struct {
	content string
	exists  bool
}

// Log is the ordered, linked log of snapshots for one workspace. It is
// the single stateful object per workspace (§9): every mutation happens
// under Log.mu, which also serves as the workspace's single-writer lock
// (§5) since the runtime always goes through CreateSnapshot to mutate.
type Log struct {
	mu             sync.Mutex
	snapshots      []*Snapshot
	headID         string
	knownPostState map[string]knownFile
	store          Store
}

// NewLog creates an empty log, or hydrates one from store if store is
// non-nil and has prior state.
func NewLog(store Store) (*Log, error) {
	l := &Log{
		knownPostState: make(map[string]knownFile),
		store:          store,
	}
	if store == nil {
		return l, nil
	}

	snapshots, headID, err := store.Load()
	if err != nil {
		return nil, err
	}
	l.snapshots = snapshots
	l.headID = headID
	for _, s := range snapshots {
		for path, fs := range s.FileStates {
			if fs.PostContent != nil {
				l.knownPostState[path] = knownFile{content: *fs.PostContent, exists: true}
			} else {
				l.knownPostState[path] = knownFile{exists: false}
			}
		}
	}
	return l, nil
}

// CreateSnapshot runs the six-step protocol of §4.3: detect external
// changes, capture pre-state, mutate, capture post-state, diff, append.
func (l *Log) CreateSnapshot(req CreateSnapshotRequest) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	type captured struct {
		content string
		exists  bool
	}
	pre := make(map[string]captured, len(req.AffectedFiles))
	var externalChanges []ExternalChange

	// Steps 1 & 2: external-change detection and pre-state capture share
	// one disk read per file.
	for _, path := range req.AffectedFiles {
		content, exists, err := req.ReadCurrent(path)
		if err != nil {
			return nil, err
		}
		pre[path] = captured{content: content, exists: exists}

		known, wasKnown := l.knownPostState[path]
		switch {
		case !wasKnown && exists:
			externalChanges = append(externalChanges, ExternalChange{Path: path, Observed: content, Created: true})
		case wasKnown && known.exists && exists && known.content != content:
			externalChanges = append(externalChanges, ExternalChange{Path: path, Known: known.content, Observed: content})
		case wasKnown && known.exists && !exists:
			externalChanges = append(externalChanges, ExternalChange{Path: path, Known: known.content, Deleted: true})
		}
	}

	if len(externalChanges) > 0 {
		logger.WarnFields("external change detected before snapshot", logger.Fields{
			"tool":  req.Tool,
			"count": len(externalChanges),
		})
	}

	// Step 3: mutate. Failure aborts without appending a snapshot or
	// discarding the external-change observations gathered above (they
	// were never committed to knownPostState).
	if err := req.Mutate(); err != nil {
		return nil, err
	}

	// Step 4: capture post-state.
	post := make(map[string]captured, len(req.AffectedFiles))
	for _, path := range req.AffectedFiles {
		content, exists, err := req.ReadPost(path)
		if err != nil {
			return nil, err
		}
		post[path] = captured{content: content, exists: exists}
	}

	// Step 5: diff per file.
	fileStates := make(map[string]FileState, len(req.AffectedFiles))
	diffText := ""
	for _, path := range req.AffectedFiles {
		prc, poc := pre[path], post[path]
		fs := FileState{}
		if prc.exists {
			c := prc.content
			fs.PreContent = &c
		}
		if poc.exists {
			c := poc.content
			fs.PostContent = &c
		}
		fileStates[path] = fs

		oldContent, newContent := "", ""
		if prc.exists {
			oldContent = prc.content
		}
		if poc.exists {
			newContent = poc.content
		}
		diffText += diffengine.Generate(oldContent, newContent, diffengine.GenerateOptions{OldPath: path, NewPath: path})
	}

	// Step 6: append.
	seq := len(l.snapshots) + 1
	snap := &Snapshot{
		ID:              newSnapshotID(seq),
		SequenceNumber:  seq,
		PreviousID:      l.headID,
		Timestamp:       time.Now(),
		Tool:            req.Tool,
		Description:     req.Description,
		Goal:            req.Goal,
		AffectedFiles:   append([]string(nil), req.AffectedFiles...),
		FileStates:      fileStates,
		Diff:            diffText,
		ExternalChanges: externalChanges,
	}
	l.snapshots = append(l.snapshots, snap)
	l.headID = snap.ID
	for _, path := range req.AffectedFiles {
		poc := post[path]
		l.knownPostState[path] = knownFile{content: poc.content, exists: poc.exists}
	}

	logger.InfoFields("snapshot recorded", logger.Fields{
		"sequence": seq,
		"tool":     req.Tool,
		"files":    len(req.AffectedFiles),
	})

	if err := l.persist(); err != nil {
		return snap, err
	}
	return snap, nil
}

// List returns snapshots in insertion order. Diffs are stripped unless
// opts.IncludeDiffs is set, since they may be large.
func (l *Log) List(opts ListOptions) []*Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.snapshots)
	start := 0
	if opts.Limit > 0 && opts.Limit < n {
		start = n - opts.Limit
	}

	out := make([]*Snapshot, 0, n-start)
	for _, s := range l.snapshots[start:] {
		cp := *s
		if !opts.IncludeDiffs {
			cp.Diff = ""
		}
		out = append(out, &cp)
	}
	return out
}

// Head returns the most recent snapshot, or nil if the log is empty.
func (l *Log) Head() *Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.snapshots) == 0 {
		return nil
	}
	cp := *l.snapshots[len(l.snapshots)-1]
	return &cp
}

// Consolidate replaces the inclusive sequence range [start, end] with a
// single equivalent snapshot, re-linking and renumbering everything after
// it. It never touches the filesystem.
func (l *Log) Consolidate(start, end int, title, goal string) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.snapshots)
	if start < 1 || end < start || end > n {
		return nil, newInvalidRangeError(start, end, n)
	}

	rangeSnaps := l.snapshots[start-1 : end]

	affectedSet := make(map[string]bool)
	for _, s := range rangeSnaps {
		for _, f := range s.AffectedFiles {
			affectedSet[f] = true
		}
	}
	affected := make([]string, 0, len(affectedSet))
	for f := range affectedSet {
		affected = append(affected, f)
	}
	sort.Strings(affected)

	fileStates := make(map[string]FileState, len(affected))
	diffText := ""
	for _, path := range affected {
		var pre, post *string
		for _, s := range rangeSnaps {
			fs, ok := s.FileStates[path]
			if !ok {
				continue
			}
			if pre == nil {
				pre = fs.PreContent
			}
			post = fs.PostContent
		}
		fileStates[path] = FileState{PreContent: pre, PostContent: post}

		oldContent, newContent := "", ""
		if pre != nil {
			oldContent = *pre
		}
		if post != nil {
			newContent = *post
		}
		diffText += diffengine.Generate(oldContent, newContent, diffengine.GenerateOptions{OldPath: path, NewPath: path})
	}

	var prevID string
	if start > 1 {
		prevID = l.snapshots[start-2].ID
	}

	replacement := &Snapshot{
		ID:             newSnapshotID(start),
		SequenceNumber: start,
		PreviousID:     prevID,
		Timestamp:      time.Now(),
		Tool:           "consolidation",
		Description:    title,
		Goal:           goal,
		AffectedFiles:  affected,
		FileStates:     fileStates,
		Diff:           diffText,
	}

	shift := end - start
	newSnaps := make([]*Snapshot, 0, n-shift)
	newSnaps = append(newSnaps, l.snapshots[:start-1]...)
	newSnaps = append(newSnaps, replacement)

	prevLinkID := replacement.ID
	for _, s := range l.snapshots[end:] {
		s.SequenceNumber -= shift
		s.PreviousID = prevLinkID
		prevLinkID = s.ID
		newSnaps = append(newSnaps, s)
	}

	l.snapshots = newSnaps
	if len(newSnaps) > 0 {
		l.headID = newSnaps[len(newSnaps)-1].ID
	} else {
		l.headID = ""
	}

	if err := l.persist(); err != nil {
		return replacement, err
	}
	return replacement, nil
}

func (l *Log) persist() error {
	if l.store == nil {
		return nil
	}
	return l.store.Save(l.snapshots, l.headID)
}
