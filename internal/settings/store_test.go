package settings

import (
	"path/filepath"
	"testing"

	"github.com/inovacc/curatr/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both backends must behave identically; every test runs against each.
func withStores(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()

	t.Run("bolt", func(t *testing.T) {
		s, err := NewBolt(filepath.Join(t.TempDir(), "curatr.bolt"))
		require.NoError(t, err)

		t.Cleanup(func() { _ = s.Close() })

		fn(t, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		s, err := NewSQLite(filepath.Join(t.TempDir(), "curatr.db"))
		require.NoError(t, err)

		t.Cleanup(func() { _ = s.Close() })

		fn(t, s)
	})
}

func TestLoadReturnsDefaultsWhenUnset(t *testing.T) {
	withStores(t, func(t *testing.T, s Store) {
		vs, err := s.Load("models")
		require.NoError(t, err)

		assert.Equal(t, model.DefaultViewSettings(), vs)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	withStores(t, func(t *testing.T, s Store) {
		vs := model.DefaultViewSettings()
		vs.Name = "bert"
		vs.Labels = []string{"nlp", "prod"}
		vs.SortKey = model.SortByName
		vs.SortDesc = true
		vs.Offset = 40

		require.NoError(t, s.Save("models", vs, Replace))

		got, err := s.Load("models")
		require.NoError(t, err)
		assert.Equal(t, vs, got)
	})
}

func TestPagesAreIndependent(t *testing.T) {
	withStores(t, func(t *testing.T, s Store) {
		a := model.DefaultViewSettings()
		a.Name = "alpha"
		require.NoError(t, s.Save("models", a, Replace))

		b, err := s.Load("other")
		require.NoError(t, err)
		assert.Empty(t, b.Name)
	})
}

func TestPushAndBack(t *testing.T) {
	withStores(t, func(t *testing.T, s Store) {
		first := model.DefaultViewSettings()
		require.NoError(t, s.Save("models", first, Push))

		second := first
		second.Offset = 20
		require.NoError(t, s.Save("models", second, Push))

		got, ok, err := s.Back("models")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, first, got)

		// No earlier entry left.
		_, ok, err = s.Back("models")
		require.NoError(t, err)
		assert.False(t, ok)

		got, ok, err = s.Forward("models")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, second, got)
	})
}

func TestReplaceOverwritesCurrentEntry(t *testing.T) {
	withStores(t, func(t *testing.T, s Store) {
		first := model.DefaultViewSettings()
		require.NoError(t, s.Save("models", first, Push))

		resorted := first
		resorted.SortKey = model.SortByName
		require.NoError(t, s.Save("models", resorted, Replace))

		// Replace leaves nothing to go back to.
		_, ok, err := s.Back("models")
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := s.Load("models")
		require.NoError(t, err)
		assert.Equal(t, model.SortByName, got.SortKey)
	})
}

func TestPushDiscardsForwardEntries(t *testing.T) {
	withStores(t, func(t *testing.T, s Store) {
		a := model.DefaultViewSettings()
		b, c := a, a
		b.Offset = 20
		c.Offset = 40

		require.NoError(t, s.Save("models", a, Push))
		require.NoError(t, s.Save("models", b, Push))

		_, ok, err := s.Back("models")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, s.Save("models", c, Push))

		// b was discarded by the new push.
		got, ok, err := s.Forward("models")
		require.NoError(t, err)
		assert.False(t, ok)
		_ = got

		cur, err := s.Load("models")
		require.NoError(t, err)
		assert.Equal(t, 40, cur.Offset)
	})
}

func TestConfigRoundTrip(t *testing.T) {
	withStores(t, func(t *testing.T, s Store) {
		cfg, err := s.GetConfig()
		require.NoError(t, err)
		assert.Equal(t, model.DefaultConfig(), *cfg)

		cfg.RegistryURL = "https://registry.example.com"
		cfg.Username = "maria"
		cfg.Admin = true
		require.NoError(t, s.SaveConfig(cfg))

		got, err := s.GetConfig()
		require.NoError(t, err)
		assert.Equal(t, cfg, got)
	})
}

func TestHistoryApplyBounds(t *testing.T) {
	var h history

	for i := range maxHistoryEntries + 10 {
		vs := model.DefaultViewSettings()
		vs.Offset = i

		h.apply(vs, Push)
	}

	assert.Len(t, h.Entries, maxHistoryEntries)

	cur, ok := h.current()
	require.True(t, ok)
	assert.Equal(t, maxHistoryEntries+9, cur.Offset)
}
