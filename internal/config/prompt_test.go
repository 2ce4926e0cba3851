package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptAnswersBecomeDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	answers := func(c *Config) error {
		applyPromptOptions(c, PromptOptions{
			UserName:       " Ada ",
			DefaultMinutes: 45,
		})

		return nil
	}

	cfg, err := New(answers, WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Mission.DefaultMinutes)
	assert.Equal(t, "Ada", cfg.Profile.UserName)

	// a second load reads the answers back from the written file
	cfg, err = New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Mission.DefaultMinutes)
	assert.Equal(t, "Ada", cfg.Profile.UserName)
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "90s", want: "1m30s"},
		{in: "5", want: "5m0s"},
		{in: "1h", want: "1h0m0s"},
		{in: "later", err: true},
	}

	for _, tc := range cases {
		got, err := parseDuration(tc.in)
		if tc.err {
			assert.Error(t, err)
			continue
		}

		require.NoError(t, err)
		assert.Equal(t, tc.want, got.String())
	}
}
