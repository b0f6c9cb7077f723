package memguard

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// WatchConfig re-reads path whenever it changes and hands the result
// to apply. Only runtime-safe knobs should take effect after startup;
// the usual apply callback flips the verbose toggle and leaves
// strategy changes for the next restart. The parent directory is
// watched so editor replace-by-rename saves are seen too. Returns when
// ctx is done.
func WatchConfig(ctx context.Context, path string, log zerolog.Logger, apply func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	log.Debug().Str("path", path).Msg("watching config")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				log.Warn().Err(err).Msg("config reload failed; keeping previous settings")
				continue
			}
			log.Info().Bool("verbose", cfg.Verbose).Msg("config reloaded")
			apply(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("config watch error")
		}
	}
}
