package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/bnema/formview/internal/logging"
)

// settleDelay lets editors finish writing before a file is re-read.
const settleDelay = 100 * time.Millisecond

// WatchFiles calls onChange when any of paths is written, created or
// renamed over. Bursts are coalesced and calls are spaced at least interval
// apart. Parent directories are watched so atomic saves are seen. It blocks
// until ctx is done.
func WatchFiles(ctx context.Context, paths []string, interval time.Duration, onChange func()) error {
	log := logging.FromContext(ctx).With().Str("component", "file-watcher").Logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" || p == "-" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !watched[name] {
				continue
			}
			log.Debug().Str("file", name).Str("op", ev.Op.String()).Msg("watched file changed")
			if fire == nil {
				fire = time.After(limiter.Reserve().Delay() + settleDelay)
			}
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}
