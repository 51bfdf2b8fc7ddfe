package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"mosaic-hq/configurator/pkg/catalog"
)

// DefaultDebounce batches the event bursts editors and deploy tools emit
// into a single reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a FileSource whenever its backing files change and hands
// the fresh descriptors to a callback. A reload that fails to parse is
// logged and dropped; the previous catalog stays active.
type Watcher struct {
	source   *FileSource
	onChange func([]*catalog.Descriptor)
	debounce time.Duration
	logger   *slog.Logger

	fw   *fsnotify.Watcher
	stop chan struct{}
}

// NewWatcher creates a watcher for the source. The callback runs on the
// watcher goroutine; keep it fast or hand off. A non-positive debounce uses
// DefaultDebounce.
func NewWatcher(src *FileSource, debounce time.Duration, logger *slog.Logger, onChange func([]*catalog.Descriptor)) (*Watcher, error) {
	if src == nil {
		return nil, fmt.Errorf("source: nil file source")
	}
	if onChange == nil {
		return nil, fmt.Errorf("source: nil change callback")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("source: create watcher: %w", err)
	}
	if err := fw.Add(src.Path()); err != nil {
		fw.Close()
		return nil, fmt.Errorf("source: watch %s: %w", src.Path(), err)
	}

	return &Watcher{
		source:   src,
		onChange: onChange,
		debounce: debounce,
		logger:   logger,
		fw:       fw,
		stop:     make(chan struct{}),
	}, nil
}

// Start runs the watch loop until the context is canceled or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop terminates the watch loop and releases the file watcher.
func (w *Watcher) Stop() {
	close(w.stop)
	w.fw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("catalog change detected", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("catalog watcher error", "error", err)

		case <-fire:
			timer = nil
			fire = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return ext == ".yaml" || ext == ".yml" || event.Name == w.source.Path()
}

func (w *Watcher) reload(ctx context.Context) {
	descs, err := w.source.Load(ctx)
	if err != nil {
		w.logger.Error("catalog reload failed, keeping previous catalog", "error", err)
		return
	}
	w.logger.Info("catalog reloaded", "catalogs", len(descs))
	w.onChange(descs)
}
