package toolpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_EnvOverrideWins(t *testing.T) {
	l := &Locator{
		Getenv:     func(k string) string { return map[string]string{EnvVar: "/custom/idb"}[k] },
		Exists:     func(string) bool { return true },
		Candidates: []string{"/opt/homebrew/bin/idb"},
	}
	res := l.Locate()
	assert.Equal(t, "/custom/idb", res.Path)
	assert.Equal(t, SourceEnv, res.Source)
}

func TestLocate_FirstExistingCandidate(t *testing.T) {
	l := &Locator{
		Getenv:     func(string) string { return "" },
		Exists:     func(p string) bool { return p == "/b/idb" || p == "/c/idb" },
		Candidates: []string{"/a/idb", "/b/idb", "/c/idb"},
	}
	res := l.Locate()
	assert.Equal(t, "/b/idb", res.Path)
	assert.Equal(t, SourceCandidate, res.Source)
}

func TestLocate_FallsBackToPATH(t *testing.T) {
	l := &Locator{
		Getenv:     func(string) string { return "" },
		Exists:     func(string) bool { return false },
		Candidates: []string{"/a/idb"},
	}
	res := l.Locate()
	assert.Equal(t, DefaultName, res.Path)
	assert.Equal(t, SourcePATH, res.Source)
}

func TestDefaultCandidates_Order(t *testing.T) {
	c := DefaultCandidates("/Users/dev")
	require.GreaterOrEqual(t, len(c), 3)
	assert.Equal(t, "/opt/homebrew/bin/idb", c[0])
	assert.Equal(t, "/usr/local/bin/idb", c[1])
	assert.Equal(t, "/Users/dev/.local/bin/idb", c[2])

	assert.Len(t, DefaultCandidates(""), 2)
}

func TestIsExecutableFile(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "idb")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	plain := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))

	assert.True(t, isExecutableFile(exe))
	assert.False(t, isExecutableFile(plain))
	assert.False(t, isExecutableFile(dir))
	assert.False(t, isExecutableFile(filepath.Join(dir, "missing")))
}
