package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpenSplitsLines(t *testing.T) {
	e := testEditor()
	require.NoError(t, e.Open(writeTempFile(t, "a\nbb\nccc\n")))

	require.Equal(t, 3, len(e.row))
	require.Equal(t, "a", string(e.row[0].chars))
	require.Equal(t, "bb", string(e.row[1].chars))
	require.Equal(t, "ccc", string(e.row[2].chars))
	require.Zero(t, e.dirty, "a freshly opened document is clean")
}

func TestOpenStripsCarriageReturns(t *testing.T) {
	e := testEditor()
	require.NoError(t, e.Open(writeTempFile(t, "a\r\nbb\r\n")))

	require.Equal(t, 2, len(e.row))
	require.Equal(t, "a", string(e.row[0].chars))
	require.Equal(t, "bb", string(e.row[1].chars))
}

func TestOpenMissingFileFails(t *testing.T) {
	e := testEditor()
	err := e.Open(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestSaveWithoutFilenameIsNoop(t *testing.T) {
	e := testEditor("x")
	e.dirty = 1

	e.Save()

	require.Equal(t, 1, e.dirty)
	require.Empty(t, e.statusMessage)
}

func TestSaveWritesNewlineJoinedRows(t *testing.T) {
	e := testEditor("a", "bb", "ccc")
	e.filename = filepath.Join(t.TempDir(), "out.txt")

	e.Save()

	got, err := os.ReadFile(e.filename)
	require.NoError(t, err)
	require.Equal(t, "a\nbb\nccc\n", string(got))
	require.Zero(t, e.dirty)
	require.Contains(t, e.statusMessage, "9 bytes written to disk")
}

func TestSaveReplacesExistingContent(t *testing.T) {
	path := writeTempFile(t, "old content, longer than the new one\n")
	e := testEditor("new")
	e.filename = path

	e.Save()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new\n", string(got), "save must not leave stale bytes behind")
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	e := testEditor("a")
	e.filename = filepath.Join(dir, "out.txt")

	e.Save()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "out.txt", entries[0].Name())
}

func TestLoadSaveRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[ -~\t]{0,40}`), 0, 20).Draw(rt, "lines")
		content := ""
		if len(lines) > 0 {
			content = strings.Join(lines, "\n") + "\n"
		}

		path := filepath.Join(t.TempDir(), "doc.txt")
		require.NoError(rt, os.WriteFile(path, []byte(content), 0644))

		e := &Editor{screenRows: 10, screenCols: 40}
		require.NoError(rt, e.Open(path))
		e.Save()

		got, err := os.ReadFile(path)
		require.NoError(rt, err)
		require.Equal(rt, content, string(got))
	})
}

// CRLF input loads, but saves back normalized to bare newlines.
func TestRoundTripNormalizesLineTerminators(t *testing.T) {
	path := writeTempFile(t, "a\r\nbb\r\n")
	e := testEditor()
	require.NoError(t, e.Open(path))

	e.Save()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a\nbb\n", string(got))
}
