package in

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"drill/internal/modules/exercise/dto"
	exercisein "drill/internal/modules/exercise/port/in"
)

const defaultDebounce = 300 * time.Millisecond

// IngestFunc receives the result of every re-ingestion triggered by the
// watcher.
type IngestFunc func(dto.IngestOutput, error)

// FolderWatcher re-ingests a drop folder whenever a .txt file inside it is
// created, written, removed or renamed. Bursts of events are coalesced.
type FolderWatcher struct {
	usecase  exercisein.Usecase
	dir      string
	debounce time.Duration
	logger   *zap.Logger

	watcher   *fsnotify.Watcher
	closeOnce sync.Once
}

func NewFolderWatcher(usecase exercisein.Usecase, dir string, debounce time.Duration, logger *zap.Logger) (*FolderWatcher, error) {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("watch target is not a directory: " + dir)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FolderWatcher{usecase: usecase, dir: dir, debounce: debounce, logger: logger, watcher: w}
	if err := fw.addTree(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	return fw, nil
}

func (w *FolderWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
}

// Run blocks until ctx is cancelled or the watcher is closed.
func (w *FolderWatcher) Run(ctx context.Context, onIngest IngestFunc) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("drop folder changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch drop folder", zap.Error(err))
		case <-timer.C:
			pending = false
			out, err := w.usecase.Ingest(ctx, dto.IngestInput{Paths: []string{w.dir}})
			if onIngest != nil {
				onIngest(out, err)
			}
		}
	}
}

func (w *FolderWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watch new folder", zap.String("path", event.Name), zap.Error(err))
			}
			return true
		}
	}
	if !strings.EqualFold(filepath.Ext(event.Name), ".txt") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *FolderWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
