package loader

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lumipallolabs/corpusmap/internal/logging"
)

// watchDebounce coalesces bursts of filesystem events (editors write files
// in several steps) into one reload signal
const watchDebounce = 150 * time.Millisecond

// Watch emits a signal on the returned channel whenever record files under
// dir change, debounced. The channel closes when ctx is cancelled or the
// watcher fails.
func Watch(ctx context.Context, dir string) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		defer w.Close()

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				logging.Loader.Printf("watch: %s %s", ev.Op, ev.Name)
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(watchDebounce)
				}

			case <-timerC:
				timer = nil
				timerC = nil
				select {
				case out <- struct{}{}:
				default:
				}

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logging.Loader.Printf("watch error: %v", err)
			}
		}
	}()

	return out, nil
}
