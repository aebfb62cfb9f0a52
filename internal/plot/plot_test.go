package plot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirhist/internal/search"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestShortenLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/", "/"},
		{"a", "a"},
		{"abcde", "abcde"},
		{"abcdef", "a...ef"},
		{"subdirectory", "s...ry"},
		{"a/b/c/d", "a.../d"},
		{"测试目录名称", "测...名称"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, shortenLabel(tt.in))
		})
	}
}

func TestPlotter_Plot(t *testing.T) {
	dir := t.TempDir()
	p := NewPlotter(dir, "Search for files in /data")

	assert.Equal(t, dir, filepath.Dir(p.Path()))
	assert.True(t, strings.HasSuffix(p.Path(), ".png"))
	assert.NoFileExists(t, p.Path())

	require.NoError(t, p.Plot(search.Result{search.RootKey: 2, "a": 3, "subdirectory": 1}, search.StatusReady))

	data, err := os.ReadFile(p.Path())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))

	// replotting replaces the image in place
	require.NoError(t, p.Plot(search.Result{"a": 1}, search.StatusReady))
	assert.FileExists(t, p.Path())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}

func TestPlotter_UniquePaths(t *testing.T) {
	dir := t.TempDir()
	assert.NotEqual(t, NewPlotter(dir, "a").Path(), NewPlotter(dir, "a").Path())
}

func TestPlotter_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots", "nested")
	p := NewPlotter(dir, "title")

	require.NoError(t, p.Plot(search.Result{"a": 1}, search.StatusReady))
	assert.FileExists(t, p.Path())
}

func TestPlotter_NothingToPlot(t *testing.T) {
	p := NewPlotter(t.TempDir(), "title")

	assert.ErrorIs(t, p.Plot(search.Result{}, search.StatusReady), ErrNothingToPlot)
	assert.ErrorIs(t, p.Plot(nil, search.StatusReady), ErrNothingToPlot)
	assert.NoFileExists(t, p.Path())
}

func TestPlotter_RequiresCompletedSearch(t *testing.T) {
	p := NewPlotter(t.TempDir(), "title")
	result := search.Result{"a": 1}

	for _, status := range []search.Status{search.StatusSearching, search.StatusCancelled} {
		err := p.Plot(result, status)
		assert.ErrorIs(t, err, ErrNotReady, status.String())
		assert.NoFileExists(t, p.Path())
	}

	require.NoError(t, p.Plot(result, search.StatusReady))
	assert.FileExists(t, p.Path())
}

func TestPlotter_Show(t *testing.T) {
	p := NewPlotter(t.TempDir(), "title")

	var opened []string
	p.open = func(path string) error {
		opened = append(opened, path)
		return nil
	}

	err := p.Show()
	assert.True(t, errors.Is(err, ErrNoPlot))
	assert.Empty(t, opened)

	require.NoError(t, p.Plot(search.Result{"a": 1}, search.StatusReady))
	require.NoError(t, p.Show())
	assert.Equal(t, []string{p.Path()}, opened)

	p.open = func(string) error { return errors.New("no viewer") }
	assert.EqualError(t, p.Show(), "no viewer")
}

func TestPlotter_Clear(t *testing.T) {
	p := NewPlotter(t.TempDir(), "title")

	require.NoError(t, p.Clear(), "clearing before plotting is a no-op")

	require.NoError(t, p.Plot(search.Result{"a": 1}, search.StatusReady))
	require.NoError(t, p.Clear())
	assert.NoFileExists(t, p.Path())
	assert.NoFileExists(t, p.Path()+lockSuffix)

	require.NoError(t, p.Clear())
	assert.ErrorIs(t, p.Show(), ErrNoPlot)
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	require.NoError(t, atomicWrite(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
