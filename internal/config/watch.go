package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadQuietPeriod is how long the file must stay untouched before it is
// re-read; editors often write a file in several steps.
const reloadQuietPeriod = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
// Only the most recent valid config is kept if the consumer falls behind.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan Config
	errs    chan error
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Watch starts watching the given config file. The parent directory is
// watched so that atomic replace-on-save is observed too.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: cannot create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("config: cannot watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fsw,
		updates: make(chan Config, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Updates delivers freshly loaded configs.
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Errors delivers read or validation failures of the watched file.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		close(w.updates)
		close(w.errs)
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadQuietPeriod)
			} else {
				timer.Reset(reloadQuietPeriod)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.sendErr(err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.sendErr(fmt.Errorf("config: reload %s: %w", w.path, err))
		return
	}
	cfg, err := Parse(data)
	if err != nil {
		w.sendErr(fmt.Errorf("config: reload %s: %w", w.path, err))
		return
	}

	// Replace a stale unread update with the newest one.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	case <-w.done:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
