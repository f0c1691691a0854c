package prefabs

import (
	"path/filepath"

	"github.com/rs/zerolog"
)

// Reloader routes watcher events to handlers keyed by file base name. It is
// drained from the simulation thread so handlers never race the tick.
type Reloader struct {
	watcher  *Watcher
	handlers map[string]func() error
	log      zerolog.Logger
}

func NewReloader(w *Watcher, log zerolog.Logger) *Reloader {
	return &Reloader{
		watcher:  w,
		handlers: make(map[string]func() error),
		log:      log,
	}
}

// Handle registers fn for changes to the named file.
func (r *Reloader) Handle(name string, fn func() error) {
	r.handlers[filepath.Base(name)] = fn
}

// Drain runs the handlers for every pending event without blocking and
// returns how many reloads succeeded.
func (r *Reloader) Drain() int {
	if r == nil || r.watcher == nil {
		return 0
	}
	reloaded := 0
	for {
		select {
		case path, ok := <-r.watcher.Events:
			if !ok {
				return reloaded
			}
			if r.dispatch(path) {
				reloaded++
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return reloaded
			}
			r.log.Warn().Err(err).Msg("prefab watcher error")
		default:
			return reloaded
		}
	}
}

func (r *Reloader) dispatch(path string) bool {
	name := filepath.Base(path)
	fn, ok := r.handlers[name]
	if !ok {
		return false
	}
	if err := fn(); err != nil {
		r.log.Warn().Err(err).Str("file", name).Msg("reload failed; keeping previous settings")
		return false
	}
	r.log.Info().Str("file", name).Msg("reloaded")
	return true
}
