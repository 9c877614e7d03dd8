package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher 监听单个文件的写入/创建事件，去抖后回调。
// 监听的是所在目录，编辑器以 rename 方式保存时也能收到事件。
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher

	// OnError receives watcher errors; nil drops them.
	OnError func(error)
}

// NewWatcher starts watching path's directory. Events are only delivered
// once Run is called.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return &Watcher{path: abs, debounce: debounce, fsw: fsw}, nil
}

// Run blocks until ctx is done, calling onChange once per burst of
// changes to the file.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// 只处理写入和创建事件
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
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
		case <-fire:
			fire = nil
			if onChange != nil {
				onChange()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// WatchConfig reloads the config at path whenever it changes, applying
// overrides on every load. Configs that fail to load go to onError and the
// previous config stays in effect.
func WatchConfig(ctx context.Context, path string, onUpdate func(AppConfig), onError func(error), overrides ...func(*AppConfig)) error {
	cfg, err := LoadWithEnvOverrides(path, overrides...)
	if err != nil {
		return err
	}
	w, err := NewWatcher(path, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
	if err != nil {
		return err
	}
	defer w.Close()
	w.OnError = onError
	return w.Run(ctx, func() {
		next, err := LoadWithEnvOverrides(path, overrides...)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if onUpdate != nil {
			onUpdate(next)
		}
	})
}
