// Package uploads watches a drop directory and ingests files placed in
// it as local documents. Files are handed to the document service on
// create and write events; subdirectories are not watched.
package uploads

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driving"
	"github.com/credentia-labs/corpora-cli/internal/logger"
)

// settleDelay is how long a file must be quiet before ingestion. Editors
// and copies emit several write events for one file.
const settleDelay = 500 * time.Millisecond

// Watcher ingests files dropped into a directory.
type Watcher struct {
	dir     string
	docs    driving.DocumentService
	settle  time.Duration
	pending map[string]*time.Timer
}

// NewWatcher creates a watcher over dir that ingests through docs.
func NewWatcher(dir string, docs driving.DocumentService) *Watcher {
	return &Watcher{
		dir:     dir,
		docs:    docs,
		settle:  settleDelay,
		pending: make(map[string]*time.Timer),
	}
}

// Run watches the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	logger.Info("watching %s for uploads", w.dir)

	ingest := make(chan string)
	done := make(chan struct{})
	defer func() {
		// Unblock any fired settle timer still waiting to deliver.
		close(done)
		for _, timer := range w.pending {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if skipUpload(event.Name) {
				continue
			}
			w.schedule(event.Name, ingest, done)

		case path := <-ingest:
			w.ingest(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// schedule (re)arms the settle timer for a path. The timer callback
// gives up when the watch loop has exited, so a fired timer never
// leaves its goroutine blocked on the ingest channel.
func (w *Watcher) schedule(path string, ingest chan<- string, done <-chan struct{}) {
	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		select {
		case ingest <- path:
		case <-done:
		}
	})
}

// ingest hands one settled file to the document service.
func (w *Watcher) ingest(ctx context.Context, path string) {
	delete(w.pending, path)

	fileType := domain.UploadTypeForExtension(strings.ToLower(filepath.Ext(path)))
	id, err := w.docs.Ingest(ctx, path, fileType)
	if err != nil {
		logger.Warn("ingest %s: %v", filepath.Base(path), err)
		return
	}
	logger.Info("ingested %s as document %s", filepath.Base(path), id)
}

// skipUpload filters out files that should never be ingested.
func skipUpload(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	// Partial transfers and editor droppings.
	for _, suffix := range []string{".tmp", ".part", ".swp", "~"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}
