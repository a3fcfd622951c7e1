package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// CachedScanner reuses a scan result across commands in an interactive
// session and rescans lazily after the filesystem changes.
type CachedScanner struct {
	root    string
	mu      sync.Mutex
	cached  *ProjectContext
	dirty   bool
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewCachedScanner creates a cached scanner rooted at root
func NewCachedScanner(root string) *CachedScanner {
	return &CachedScanner{root: root, dirty: true}
}

// Scan returns the cached ProjectContext, rescanning if the cache is stale
func (c *CachedScanner) Scan() (*ProjectContext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && !c.dirty {
		return c.cached, nil
	}

	ctx, err := Scan(c.root)
	if err != nil {
		return ctx, err
	}
	c.cached = ctx
	c.dirty = false
	return ctx, nil
}

// Invalidate forces the next Scan to walk the project again
func (c *CachedScanner) Invalidate() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

// StartWatching begins invalidating the cache on filesystem events.
// Watch failures are not fatal; the scanner falls back to serving the
// last scan until Invalidate is called.
func (c *CachedScanner) StartWatching() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the root and non-ignored directories within the scan depth
	err = filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}

		relPath, relErr := filepath.Rel(c.root, path)
		if relErr != nil {
			return nil
		}
		if relPath != "." {
			name := d.Name()
			if skipDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if strings.Count(filepath.ToSlash(relPath), "/")+1 > maxDepth {
				return filepath.SkipDir
			}
		}

		return watcher.Add(path)
	})
	if err != nil {
		watcher.Close()
		return err
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.watcher = watcher
	c.done = done
	c.mu.Unlock()

	// The goroutine works on its own copies; the fields stay owned by the mutex
	go c.watchLoop(watcher, done)
	return nil
}

// StopWatching stops filesystem watching
func (c *CachedScanner) StopWatching() {
	c.mu.Lock()
	watcher := c.watcher
	done := c.done
	c.watcher = nil
	c.done = nil
	c.mu.Unlock()

	if watcher != nil {
		close(done)
		watcher.Close()
	}
}

func (c *CachedScanner) watchLoop(watcher *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case _, ok := <-watcher.Events:
			if !ok {
				return
			}
			c.Invalidate()
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Watch errors just degrade to a stale cache
		case <-done:
			return
		}
	}
}
