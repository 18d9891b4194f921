package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sessionConfig struct {
	separator rune
	name      string
	calls     []string
}

func withSeparator(r rune) Option[*sessionConfig] {
	return New(func(c *sessionConfig) error {
		if r == '\n' {
			return errors.New("separator cannot be a line break")
		}
		c.separator = r
		c.calls = append(c.calls, "separator")

		return nil
	})
}

func withName(name string) Option[*sessionConfig] {
	return NoError(func(c *sessionConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &sessionConfig{}

		err := Apply(cfg, withName("tsv"), withSeparator('\t'))
		require.NoError(t, err)
		require.Equal(t, '\t', cfg.separator)
		require.Equal(t, "tsv", cfg.name)
		require.Equal(t, []string{"name", "separator"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &sessionConfig{}

		err := Apply(cfg, withSeparator('\n'), withName("never"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "line break")
		require.Empty(t, cfg.name)
		require.Empty(t, cfg.calls)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &sessionConfig{}

		err := Apply(cfg, nil, withName("x"), nil)
		require.NoError(t, err)
		require.Equal(t, "x", cfg.name)
	})

	t.Run("empty option list", func(t *testing.T) {
		cfg := &sessionConfig{}
		require.NoError(t, Apply(cfg))
		require.Zero(t, cfg.separator)
	})
}

func TestNoError(t *testing.T) {
	cfg := &sessionConfig{}
	opt := NoError(func(c *sessionConfig) { c.separator = ',' })

	require.NoError(t, opt.apply(cfg))
	require.Equal(t, ',', cfg.separator)
}
