package workspace

import (
	"context"
	"io/fs"
	"time"
)

// Watcher polls the workspace root and reparses source files whose
// modification time changed.
type Watcher struct {
	workspace    *Workspace
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// OnChange is called with every file that was parsed again.
	OnChange func(*File)
	// OnRemove is called with the path of every file that disappeared.
	OnRemove func(path string)
}

func NewWatcher(w *Workspace, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		workspace:    w,
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

// Run scans once immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Scan()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan performs one polling pass.
func (w *Watcher) Scan() {
	current := make(map[string]bool)
	w.workspace.walk(func(path string, info fs.FileInfo) {
		current[path] = true
		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return
		}
		w.modTimes[path] = info.ModTime()
		f, err := w.workspace.ScanFile(path)
		if err != nil {
			log.Errorf("scan %s: %s", path, err)
			return
		}
		if w.OnChange != nil {
			w.OnChange(f)
		}
	})

	for path := range w.modTimes {
		if current[path] {
			continue
		}
		delete(w.modTimes, path)
		w.workspace.RemoveFile(path)
		if w.OnRemove != nil {
			w.OnRemove(path)
		}
	}
}
