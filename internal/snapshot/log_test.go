package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFS is a tiny in-memory filesystem just for exercising CreateSnapshot's
// callback contract, independent of internal/fs.
type memFS struct {
	files map[string]string
}

func newMemFS() *memFS { return &memFS{files: map[string]string{}} }

func (m *memFS) read(path string) (string, bool, error) {
	c, ok := m.files[path]
	return c, ok, nil
}

func (m *memFS) write(path, content string) {
	m.files[path] = content
}

func (m *memFS) delete(path string) {
	delete(m.files, path)
}

func TestCreateSnapshot_CreateThenModify(t *testing.T) {
	fs := newMemFS()
	log, err := NewLog(nil)
	require.NoError(t, err)

	s1, err := log.CreateSnapshot(CreateSnapshotRequest{
		Tool:          "write_file",
		AffectedFiles: []string{"text.txt"},
		ReadCurrent:   fs.read,
		Mutate:        func() error { fs.write("text.txt", "agi is coming"); return nil },
		ReadPost:      fs.read,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s1.SequenceNumber)
	assert.Empty(t, s1.PreviousID)
	assert.Nil(t, s1.FileStates["text.txt"].PreContent)
	require.NotNil(t, s1.FileStates["text.txt"].PostContent)
	assert.Equal(t, "agi is coming", *s1.FileStates["text.txt"].PostContent)
	assert.Contains(t, s1.Diff, "@@ -1,0 +1,1 @@")

	s2, err := log.CreateSnapshot(CreateSnapshotRequest{
		Tool:          "write_file",
		AffectedFiles: []string{"text.txt"},
		ReadCurrent:   fs.read,
		Mutate:        func() error { fs.write("text.txt", "agi is here"); return nil },
		ReadPost:      fs.read,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s2.SequenceNumber)
	assert.Equal(t, s1.ID, s2.PreviousID)
	assert.Contains(t, s2.Diff, "-agi is coming")
	assert.Contains(t, s2.Diff, "+agi is here")
}

func TestCreateSnapshot_ExternalChangeReconciliation(t *testing.T) {
	fs := newMemFS()
	log, err := NewLog(nil)
	require.NoError(t, err)

	_, err = log.CreateSnapshot(CreateSnapshotRequest{
		Tool:          "write_file",
		AffectedFiles: []string{"a.txt"},
		ReadCurrent:   fs.read,
		Mutate:        func() error { fs.write("a.txt", "X"); return nil },
		ReadPost:      fs.read,
	})
	require.NoError(t, err)

	// Out-of-band change.
	fs.write("a.txt", "Y")

	s2, err := log.CreateSnapshot(CreateSnapshotRequest{
		Tool:          "write_file",
		AffectedFiles: []string{"a.txt"},
		ReadCurrent:   fs.read,
		Mutate:        func() error { fs.write("a.txt", "Z"); return nil },
		ReadPost:      fs.read,
	})
	require.NoError(t, err)
	require.Len(t, s2.ExternalChanges, 1)
	assert.Equal(t, "a.txt", s2.ExternalChanges[0].Path)
	assert.Equal(t, "X", s2.ExternalChanges[0].Known)
	assert.Equal(t, "Y", s2.ExternalChanges[0].Observed)
	require.NotNil(t, s2.FileStates["a.txt"].PreContent)
	assert.Equal(t, "Y", *s2.FileStates["a.txt"].PreContent)
}

func TestCreateSnapshot_MutateFailureAppendsNothing(t *testing.T) {
	fs := newMemFS()
	log, err := NewLog(nil)
	require.NoError(t, err)

	_, err = log.CreateSnapshot(CreateSnapshotRequest{
		Tool:          "write_file",
		AffectedFiles: []string{"a.txt"},
		ReadCurrent:   fs.read,
		Mutate:        func() error { return assertErr },
		ReadPost:      fs.read,
	})
	require.Error(t, err)
	assert.Empty(t, log.List(ListOptions{}))
}

var assertErr = &ConflictError{Message: "boom"}

func TestConsolidate(t *testing.T) {
	fs := newMemFS()
	log, err := NewLog(nil)
	require.NoError(t, err)

	values := []string{"a", "ab", "abc", "abcd"}
	for i := 1; i < len(values); i++ {
		v := values[i]
		_, err := log.CreateSnapshot(CreateSnapshotRequest{
			Tool:          "write_file",
			AffectedFiles: []string{"x.txt"},
			ReadCurrent:   fs.read,
			Mutate:        func() error { fs.write("x.txt", v); return nil },
			ReadPost:      fs.read,
		})
		require.NoError(t, err)
	}

	replacement, err := log.Consolidate(1, 3, "squash", "cleanup")
	require.NoError(t, err)
	assert.Equal(t, 1, replacement.SequenceNumber)
	assert.Nil(t, replacement.FileStates["x.txt"].PreContent)
	require.NotNil(t, replacement.FileStates["x.txt"].PostContent)
	assert.Equal(t, "abcd", *replacement.FileStates["x.txt"].PostContent)

	snaps := log.List(ListOptions{})
	require.Len(t, snaps, 1)
	assert.Equal(t, replacement.ID, snaps[0].ID)
}

func TestConsolidate_InvalidRange(t *testing.T) {
	log, err := NewLog(nil)
	require.NoError(t, err)

	_, err = log.Consolidate(1, 2, "x", "y")
	require.Error(t, err)
	var rangeErr *InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
}
