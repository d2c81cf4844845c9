package tools

import (
	"github.com/patchloom/patchloom/internal/secretdetect"
	"github.com/patchloom/patchloom/internal/workspace"
)

// aliasSpec renders an existing spec under a different tool name.
type aliasSpec struct {
	ToolSpec
	name string
}

func (a *aliasSpec) Name() string { return a.name }

// NewDefaultRegistry builds the canonical toolset (C4) bound to ws,
// with diffs scanned for likely secrets via detector.
func NewDefaultRegistry(ws *workspace.Workspace, detector secretdetect.Detector) *Registry {
	r := NewRegistryWithSecrets(detector)

	r.RegisterSpec(&ApplyWholeFileEditSpec{}, NewApplyWholeFileEditToolFactory(ws))
	r.RegisterSpec(&ApplyEditBlockSpec{}, NewApplyEditBlockToolFactory(ws))
	r.RegisterSpec(&ApplyRangedEditSpec{}, NewApplyRangedEditToolFactory(ws))
	r.RegisterSpec(&ApplyUnifiedDiffSpec{}, NewApplyUnifiedDiffToolFactory(ws))
	r.RegisterSpec(&ReverseDiffSpec{}, func(*Registry) ToolExecutor { return NewReverseDiffTool() })
	r.RegisterSpec(&DeleteSpec{}, NewDeleteToolFactory(ws))
	r.RegisterSpec(&CreateDirectorySpec{}, NewCreateDirectoryToolFactory(ws))
	r.RegisterSpec(&CompareFilesSpec{}, NewCompareFilesToolFactory(ws))
	r.RegisterSpec(&ListSnapshotsSpec{}, NewListSnapshotsToolFactory(ws))
	r.RegisterSpec(&ValidateSyntaxSpec{}, NewValidateSyntaxToolFactory(ws))

	merge := NewMergeSnapshotsTool(ws)
	r.RegisterSpec(&MergeSnapshotsSpec{}, func(*Registry) ToolExecutor { return merge })
	r.RegisterSpec(&aliasSpec{ToolSpec: &MergeSnapshotsSpec{}, name: ToolNameConsolidateSnapshots}, func(*Registry) ToolExecutor { return merge })

	return r
}
