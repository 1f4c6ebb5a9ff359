package heuristic

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.01, cfg.MissTruthness)
	assert.Equal(t, 0.001, cfg.AbsentTruthness)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("miss_truthness: 0.05\nworkers: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.MissTruthness)
	assert.Equal(t, 0.001, cfg.AbsentTruthness, "unset keys keep their default")
	assert.Equal(t, 2, cfg.Workers)

	empty, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), empty)
}

func TestParseConfig_Rejects(t *testing.T) {
	cases := map[string]string{
		"malformed yaml":          "workers: [",
		"zero workers":            "workers: 0",
		"miss of one":             "miss_truthness: 1",
		"zero miss":               "miss_truthness: 0",
		"absent above miss":       "absent_truthness: 0.02",
		"absent above size floor": "miss_truthness: 0.9\nabsent_truthness: 0.5",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
