package packs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/appengine-ltd/stationfall/internal/locale"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	Level:  charmlog.WarnLevel,
	Prefix: "packs",
})

// LoadStrings merges every *.json string pack in dir into one overlay table.
// Packs merge in file-name order, so later names win on conflicting ids.
func LoadStrings(dir string) (locale.Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	merged := locale.Table{}
	for _, name := range names {
		table, err := locale.LoadPack(filepath.Join(dir, name))
		if err != nil {
			// A malformed file may be mid-copy; skip it rather than
			// poisoning the whole overlay.
			logger.Warn("skipping string pack", "file", name, "err", err)
			continue
		}
		merged = merged.Merge(table)
	}
	return merged, nil
}

const reloadDebounce = 250 * time.Millisecond

// StringsWatcher reloads the string-pack overlay when the pack directory
// changes. Events are debounced so a copy that touches the file several
// times produces one reload.
type StringsWatcher struct {
	dir     string
	fs      *fsnotify.Watcher
	updates chan locale.Table
	done    chan struct{}

	closeOnce sync.Once
}

func WatchStrings(dir string) (*StringsWatcher, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &StringsWatcher{
		dir:     dir,
		fs:      fsw,
		updates: make(chan locale.Table, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Updates delivers the freshly merged overlay after each directory change.
// Only the latest table is kept; consumers poll at their own pace.
func (w *StringsWatcher) Updates() <-chan locale.Table {
	return w.updates
}

func (w *StringsWatcher) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		_ = w.fs.Close()
	})
}

func (w *StringsWatcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				timerC = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(reloadDebounce)
		case <-timerC:
			timer = nil
			timerC = nil
			w.publish()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("pack watcher error", "err", err)
		}
	}
}

func (w *StringsWatcher) publish() {
	table, err := LoadStrings(w.dir)
	if err != nil {
		logger.Warn("reload failed", "dir", w.dir, "err", err)
		return
	}
	// Replace any stale pending update; the latest overlay wins.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- table:
	default:
	}
}
