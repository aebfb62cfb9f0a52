package search

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingLogger keeps warnings and errors for assertions
type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) LogDebug(string, ...interface{})   {}
func (l *recordingLogger) LogInfo(string, ...interface{})    {}
func (l *recordingLogger) LogWarning(string, ...interface{}) {}

func (l *recordingLogger) LogError(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errors() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errors...)
}

func (l *recordingLogger) hasError(substr string) bool {
	for _, e := range l.Errors() {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

// makeTree creates the given slash-separated file paths (and their parent
// directories) under a fresh temp dir. Paths ending in "/" are created as
// empty directories.
func makeTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("test"), 0644))
	}
	return root
}

func newTestEngine(t *testing.T, root, pattern string) (*Engine, *recordingLogger) {
	t.Helper()
	log := &recordingLogger{}
	engine, err := New(root, pattern, Options{Logger: log})
	require.NoError(t, err)
	return engine, log
}

// faultyReader fails ReadDir for directories whose base name is in failList
type faultyReader struct {
	osDirReader
	failList map[string]error
}

func (r faultyReader) ReadDir(name string) ([]fs.DirEntry, error) {
	if err, ok := r.failList[filepath.Base(name)]; ok {
		return nil, err
	}
	return r.osDirReader.ReadDir(name)
}

// assertSubset fails unless every count in partial is <= the count in full
func assertSubset(t *testing.T, partial, full Result) {
	t.Helper()
	for key, count := range partial {
		require.Contains(t, full, key)
		require.LessOrEqual(t, count, full[key], "key %s", key)
	}
}
