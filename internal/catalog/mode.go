package catalog

import (
	"sync"

	"go.uber.org/zap"

	"lessonbox/internal/cache"
)

// Mode controls whether the read-through cache is consulted. ModeNetwork
// forces a refetch and keeps the result transient, so a diagnostic bypass
// never poisons the shared cache.
type Mode int

const (
	ModeCache Mode = iota
	ModeNetwork
)

func (m Mode) String() string {
	if m == ModeNetwork {
		return "network"
	}
	return "cache"
}

// ParseMode accepts the operator spellings: on/cache and off/network.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "on", "cache":
		return ModeCache, true
	case "off", "network":
		return ModeNetwork, true
	}
	return ModeCache, false
}

const modeKey = "cache-mode"

// ModeResolver resolves the cache mode once per process: an explicit
// parameter wins, else a previously persisted choice, else ModeCache. An
// explicit parameter is persisted so later processes keep the choice.
type ModeResolver struct {
	store *cache.Store
	log   *zap.Logger

	once sync.Once
	mode Mode
}

func NewModeResolver(store *cache.Store, log *zap.Logger) *ModeResolver {
	return &ModeResolver{store: store, log: log}
}

// Resolve returns the sticky mode for this process. Only the first call's
// param is considered.
func (r *ModeResolver) Resolve(param string) Mode {
	r.once.Do(func() {
		r.mode = ModeCache

		if mode, ok := ParseMode(param); ok {
			r.mode = mode
			if r.store != nil {
				if err := r.store.Put(modeKey, mode.String()); err != nil {
					r.log.Warn("persisting cache mode failed", zap.Error(err))
				}
			}
			return
		}

		if r.store != nil {
			var persisted string
			if found, err := r.store.Get(modeKey, &persisted); err == nil && found {
				if mode, ok := ParseMode(persisted); ok {
					r.mode = mode
				}
			}
		}
	})
	return r.mode
}
