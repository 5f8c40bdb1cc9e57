// Package watcher publishes debounced change notifications for the saved
// state database so open workspaces can refresh their state list.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/pubsub"
)

// DefaultDebounce coalesces bursts of SQLite writes into one notification.
const DefaultDebounce = 500 * time.Millisecond

// Change describes a debounced modification of the watched database.
type Change struct {
	Path string
	At   time.Time
}

// Config holds watcher configuration options.
type Config struct {
	DBPath   string
	Debounce time.Duration
}

// DefaultConfig returns the default debounce for dbPath.
func DefaultConfig(dbPath string) Config {
	return Config{DBPath: dbPath, Debounce: DefaultDebounce}
}

// Watcher monitors the state database directory and publishes an UpdatedEvent
// after writes to the database or its WAL settle.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dbPath    string
	debounce  time.Duration
	broker    *pubsub.Broker[Change]
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("watcher requires a database path")
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		dbPath:    filepath.Clean(cfg.DBPath),
		debounce:  debounce,
		broker:    pubsub.NewBroker[Change](),
		done:      make(chan struct{}),
	}, nil
}

// Broker returns the broker change events are published on.
func (w *Watcher) Broker() *pubsub.Broker[Change] {
	return w.broker
}

// Start watches the directory containing the database. The directory is
// watched instead of the file because SQLite replaces the WAL on checkpoint.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.dbPath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "Watching state database", "path", w.dbPath, "debounce", w.debounce)

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop terminates the watcher, closes the broker and releases resources.
// Calling Stop more than once is safe.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case at := <-fire:
			fire = nil
			log.Debug(log.CatWatcher, "State database changed", "path", w.dbPath)
			w.broker.Publish(pubsub.UpdatedEvent, Change{Path: w.dbPath, At: at})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watch error", err, "path", w.dbPath)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent reports writes or creates of the database or its WAL.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == w.dbPath || name == w.dbPath+"-wal"
}
