package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type deflaterConfig struct {
	capacity int
	legacy   bool
	calls    []string
}

var errNegativeCapacity = errors.New("negative capacity")

func withCapacity(n int) Option[*deflaterConfig] {
	return New(func(c *deflaterConfig) error {
		if n < 0 {
			return errNegativeCapacity
		}
		c.capacity = n
		c.calls = append(c.calls, "capacity")

		return nil
	})
}

func withLegacy() Option[*deflaterConfig] {
	return NoError(func(c *deflaterConfig) {
		c.legacy = true
		c.calls = append(c.calls, "legacy")
	})
}

func TestApply(t *testing.T) {
	t.Run("no options", func(t *testing.T) {
		cfg := &deflaterConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, &deflaterConfig{}, cfg)
	})

	t.Run("in order", func(t *testing.T) {
		cfg := &deflaterConfig{}
		require.NoError(t, Apply(cfg, withLegacy(), withCapacity(64), withCapacity(128)))
		require.True(t, cfg.legacy)
		require.Equal(t, 128, cfg.capacity)
		require.Equal(t, []string{"legacy", "capacity", "capacity"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &deflaterConfig{}
		err := Apply(cfg, withCapacity(-1), withLegacy())
		require.ErrorIs(t, err, errNegativeCapacity)
		require.False(t, cfg.legacy)
		require.Empty(t, cfg.calls)
	})

	t.Run("skips nil", func(t *testing.T) {
		var opts []Option[*deflaterConfig]
		opts = append(opts, nil, withLegacy())

		cfg := &deflaterConfig{}
		require.NoError(t, Apply(cfg, opts...))
		require.True(t, cfg.legacy)
	})
}

func TestNew_ValueTarget(t *testing.T) {
	// Options also work on non-pointer targets that carry references.
	seen := map[string]int{}
	opt := New(func(m map[string]int) error {
		m["chan"] = 8
		return nil
	})

	require.NoError(t, Apply(seen, opt))
	require.Equal(t, 8, seen["chan"])
}
