package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lessonbox/internal/cache"
)

func testStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"on", ModeCache, true},
		{"cache", ModeCache, true},
		{"off", ModeNetwork, true},
		{"network", ModeNetwork, true},
		{"", ModeCache, false},
		{"bogus", ModeCache, false},
	}

	for _, tt := range tests {
		mode, ok := ParseMode(tt.in)
		assert.Equal(t, tt.want, mode, "input %q", tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
	}
}

func TestModeResolver_DefaultsToCache(t *testing.T) {
	r := NewModeResolver(testStore(t), zap.NewNop())
	assert.Equal(t, ModeCache, r.Resolve(""))
}

func TestModeResolver_ExplicitParamWinsAndPersists(t *testing.T) {
	store := testStore(t)

	r := NewModeResolver(store, zap.NewNop())
	assert.Equal(t, ModeNetwork, r.Resolve("off"))

	// A later resolver without a param picks up the persisted choice.
	later := NewModeResolver(store, zap.NewNop())
	assert.Equal(t, ModeNetwork, later.Resolve(""))
}

func TestModeResolver_Sticky(t *testing.T) {
	r := NewModeResolver(testStore(t), zap.NewNop())
	assert.Equal(t, ModeNetwork, r.Resolve("network"))
	// Subsequent params are ignored for the process lifetime.
	assert.Equal(t, ModeNetwork, r.Resolve("cache"))
}

func TestModeResolver_IgnoresGarbagePersistedValue(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Put(modeKey, "definitely-not-a-mode"))

	r := NewModeResolver(store, zap.NewNop())
	assert.Equal(t, ModeCache, r.Resolve(""))
}

func TestModeResolver_NilStore(t *testing.T) {
	r := NewModeResolver(nil, zap.NewNop())
	assert.Equal(t, ModeNetwork, r.Resolve("off"))
}
