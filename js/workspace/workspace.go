// Package workspace keeps the parsed state of a set of JavaScript and
// TypeScript files, keyed by path. It is shared by the language server and
// the watch mode of the command line tool.
package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/parser"
	"github.com/dhamidi/jsfront/js/tree"
)

var log = commonlog.GetLogger("jsfront.workspace")

// skipDirs are never descended into by ScanAll and the watcher.
var skipDirs = map[string]bool{
	"node_modules": true,
}

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*File
	nextID  diagnostics.FileID
	ids     map[string]diagnostics.FileID
}

// File is the latest parse of one document.
type File struct {
	Path       string
	ID         diagnostics.FileID
	Version    int32
	SourceType parser.SourceType
	Content    string
	Tree       *tree.Tree
	// ParseErr is set when the content could not be parsed at all, which
	// only happens for invalid UTF-8.
	ParseErr error
}

func (f *File) Diagnostics() []diagnostics.Diagnostic {
	if f.Tree == nil {
		return nil
	}
	return f.Tree.Diagnostics
}

func New(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*File),
		ids:     make(map[string]diagnostics.FileID),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// IsSourceFile reports whether path has an extension the parser knows.
func IsSourceFile(path string) bool {
	_, err := parser.SourceTypeFromPath(path)
	return err == nil
}

// walk calls fn for every source file below the root directory.
func (w *Workspace) walk(fn func(path string, info fs.FileInfo)) error {
	return filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.rootDir && (strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsSourceFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		fn(path, info)
		return nil
	})
}

// ScanAll parses every source file below the root directory.
func (w *Workspace) ScanAll() error {
	var errs []error
	err := w.walk(func(path string, _ fs.FileInfo) {
		if _, err := w.ScanFile(path); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(append(errs, err)...)
}

// ScanFile reads path from disk and parses it with the source type implied
// by its extension.
func (w *Workspace) ScanFile(path string) (*File, error) {
	st, err := parser.SourceTypeFromPath(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, st, string(content), 0), nil
}

// UpdateFile replaces the content of path and parses it again.
func (w *Workspace) UpdateFile(path string, st parser.SourceType, content string, version int32) *File {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, ok := w.ids[path]
	if !ok {
		w.nextID++
		id = w.nextID
		w.ids[path] = id
	}
	f := &File{
		Path:       path,
		ID:         id,
		Version:    version,
		SourceType: st,
		Content:    content,
	}
	f.Tree, f.ParseErr = tree.Parse(content, parser.WithFile(id), parser.WithSourceType(st))
	if f.ParseErr != nil {
		log.Warningf("%s: %s", path, f.ParseErr)
	} else {
		log.Debugf("parsed %s (%s): %d diagnostics", path, st, len(f.Tree.Diagnostics))
	}
	w.files[path] = f
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns all known files ordered by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	files := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b *File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files
}
