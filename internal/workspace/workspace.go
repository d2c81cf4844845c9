// Package workspace owns the root directory all patchloom operations are
// scoped to: path canonicalization and containment checking, plus the one
// snapshot log a workspace owns for its lifetime.
package workspace

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patchloom/patchloom/internal/config"
	"github.com/patchloom/patchloom/internal/fs"
	"github.com/patchloom/patchloom/internal/ptlerr"
	"github.com/patchloom/patchloom/internal/runtime"
	"github.com/patchloom/patchloom/internal/snapshot"
)

// Workspace is the root a session's file edits and snapshot log are
// scoped to.
type Workspace struct {
	ID      string
	Root    string
	Config  *config.Config
	Log     *snapshot.Log
	Runtime *runtime.Runtime
}

// Open resolves root to an absolute, cleaned path and constructs a
// Workspace with a fresh (or, if cfg.PersistSnapshots is set, reloaded)
// snapshot log, plus a Runtime backed by filesystem. A nil filesystem
// defaults to a fs.CachedFS rooted at the resolved workspace root.
func Open(root string, cfg *config.Config, filesystem fs.FileSystem) (*Workspace, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, ptlerr.Wrap(ptlerr.KindInvalidPath, "cannot resolve workspace root", err)
	}
	absRoot = filepath.Clean(absRoot)

	if cfg == nil {
		cfg = config.Default()
	}

	var store snapshot.Store
	if cfg.PersistSnapshots {
		store = snapshot.NewJSONFileStore(cfg.StatePath(absRoot))
	}

	log, err := snapshot.NewLog(store)
	if err != nil {
		return nil, ptlerr.Wrap(ptlerr.KindIOError, "cannot load persisted snapshot log", err)
	}

	if filesystem == nil {
		filesystem = fs.NewCachedFS(absRoot, 5*time.Second, 256)
	}

	return &Workspace{
		ID:      uuid.NewString(),
		Root:    absRoot,
		Config:  cfg,
		Log:     log,
		Runtime: runtime.New(filesystem, absRoot, cfg),
	}, nil
}

// Resolve canonicalizes path (absolute or workspace-relative) against the
// workspace root and rejects traversal outside it. The returned path is
// workspace-relative, using forward slashes, suitable for recording in a
// Snapshot's AffectedFiles.
func (w *Workspace) Resolve(path string) (relPath, absPath string, err error) {
	if path == "" {
		return "", "", ptlerr.New(ptlerr.KindInvalidPath, "empty path")
	}

	candidate := path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(w.Root, candidate)
	}
	candidate = filepath.Clean(candidate)

	rel, err := filepath.Rel(w.Root, candidate)
	if err != nil {
		return "", "", ptlerr.Wrap(ptlerr.KindInvalidPath, "cannot resolve path against workspace root", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", ptlerr.New(ptlerr.KindPathOutsideWorkspace, "path escapes workspace root: "+path)
	}

	return filepath.ToSlash(rel), candidate, nil
}
