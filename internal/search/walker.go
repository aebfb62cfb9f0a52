package search

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// dirReader is the filesystem access needed by a traversal
type dirReader interface {
	ReadDir(name string) ([]fs.DirEntry, error)
	Stat(name string) (fs.FileInfo, error)
}

type osDirReader struct{}

func (osDirReader) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (osDirReader) Stat(name string) (fs.FileInfo, error)      { return os.Stat(name) }

// walk evaluates the files of dir, then descends into its subdirectories in
// listing order. Cancellation is checked once, before dir is listed.
func (e *Engine) walk(ctx context.Context, dir string) {
	if ctx.Err() != nil {
		e.Cancel()
	}
	if e.Status() == StatusCancelled {
		return
	}

	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		e.log.LogError("%v", &TraversalError{Dir: dir, Op: "list", Err: err})
		return
	}

	key := dirKey(e.req.Root, dir)
	dirs := make([]string, 0, len(entries))

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		kind, err := e.classify(path, entry)
		if err != nil {
			e.log.LogError("%v", &TraversalError{Dir: path, Op: "stat", Err: err})
			continue
		}

		switch kind {
		case entryLinkedDir:
			e.log.LogDebug("Not following symlinked directory: %s", path)
			continue
		case entryDir:
			if e.exclude[entry.Name()] {
				e.log.LogDebug("Skipping directory: %s", path)
				continue
			}
			dirs = append(dirs, path)
			continue
		}

		if Matches(entry.Name(), e.req.Pattern) {
			e.store.increment(key)
			e.notify()
		}
	}

	for _, subdir := range dirs {
		e.walk(ctx, subdir)
	}
}

type entryKind int

const (
	entryFile entryKind = iota
	entryDir
	entryLinkedDir // symlink to a directory, left alone unless following
)

// classify resolves symlinks so that a link to a directory is never counted
// as a file. A dangling link is a file unless following is enabled, in which
// case the failed stat is returned.
func (e *Engine) classify(path string, entry fs.DirEntry) (entryKind, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		if entry.IsDir() {
			return entryDir, nil
		}
		return entryFile, nil
	}

	info, err := e.fs.Stat(path)
	switch {
	case err != nil && e.follow:
		return entryFile, err
	case err != nil:
		return entryFile, nil
	case !info.IsDir():
		return entryFile, nil
	case e.follow:
		return entryDir, nil
	default:
		return entryLinkedDir, nil
	}
}
