package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff([]byte("a\nb\n"), []byte("a\nb\n"), false))

	got := Diff([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"), false)
	assert.Equal(t, " a\n-b\n+x\n c\n", got)
}

func TestDiff_Colored(t *testing.T) {
	got := Diff([]byte("a\n"), []byte("b\n"), true)
	assert.Contains(t, got, "\x1b[31m-a")
	assert.Contains(t, got, "\x1b[32m+b")
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh_autofrom.go")
	old := filepath.Join(dir, "old_autofrom.go")
	missing := filepath.Join(dir, "missing_autofrom.go")

	require.NoError(t, os.WriteFile(fresh, []byte("package p\n"), filePerm))
	require.NoError(t, os.WriteFile(old, []byte("package q\n"), filePerm))

	stale, err := Compare([]GeneratedFile{
		{Filename: fresh, Content: []byte("package p\n")},
		{Filename: old, Content: []byte("package p\n")},
		{Filename: missing, Content: []byte("package p\n")},
	}, nil, "", false)
	require.NoError(t, err)

	require.Len(t, stale, 2)
	assert.Equal(t, Stale{Filename: old, Diff: "-package q\n+package p\n"}, stale[0])
	assert.Equal(t, missing, stale[1].Filename)
	assert.True(t, stale[1].Missing)
	assert.Equal(t, "+package p\n", stale[1].Diff)
}

func TestCompare_Orphan(t *testing.T) {
	dir := t.TempDir()
	orphan := filepath.Join(dir, "old_autofrom.go")
	require.NoError(t, os.WriteFile(orphan, []byte("package p\n"), filePerm))

	stale, err := Compare(nil, []string{orphan}, "", false)
	require.NoError(t, err)
	assert.Equal(t, []Stale{{Filename: orphan, Orphan: true, Diff: "-package p\n"}}, stale)
}
