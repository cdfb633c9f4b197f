package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))
	return path
}

func TestResolveDirectPath(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "abc123.jsonl")

	got, err := Resolve(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolveBySessionID(t *testing.T) {
	empty := t.TempDir()
	projects := t.TempDir()
	path := writeTranscript(t, projects, "abc123.jsonl")

	tests := []struct {
		name string
		spec string
	}{
		{"bare ID", "abc123"},
		{"filename", "abc123.jsonl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.spec, []string{empty, projects})
			require.NoError(t, err)
			assert.Equal(t, path, got)
		})
	}
}

func TestResolveSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	want := writeTranscript(t, first, "abc123.jsonl")
	writeTranscript(t, second, "abc123.jsonl")

	got, err := Resolve("abc123", []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveNotFound(t *testing.T) {
	empty := t.TempDir()

	_, err := Resolve("missing", []string{empty})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveMissingDirectPathFallsThrough(t *testing.T) {
	dir := t.TempDir()

	_, err := Resolve(filepath.Join(dir, "nope", "abc.jsonl"), []string{dir})
	assert.ErrorIs(t, err, ErrNotFound)
}
