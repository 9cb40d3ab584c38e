package sweep

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/sortbench/harness"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	sizes := cfg.Sizes()
	require.Len(t, sizes, 17)
	assert.Equal(t, 1<<10, sizes[0])
	assert.Equal(t, 1<<26, sizes[len(sizes)-1])
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, "Iterations"},
		{"negative exponent", func(c *Config) { c.MinExponent = -1 }, "MinExponent"},
		{"empty range", func(c *Config) { c.MaxExponent = c.MinExponent }, "MaxExponent"},
		{"exponent too large", func(c *Config) { c.MaxExponent = 41 }, "MaxExponent"},
		{"sizes beyond int32", func(c *Config) { c.MaxExponent = 32 }, "MaxExponent"},
		{"min exponent beyond int32", func(c *Config) {
			c.MinExponent = 31
			c.MaxExponent = 31
		}, "MinExponent"},
		{"no distributions", func(c *Config) { c.Distributions = nil }, "Distributions"},
		{"blank distribution", func(c *Config) { c.Distributions = []string{""} }, "Distributions[0]"},
		{"no candidate", func(c *Config) { c.Candidate = "" }, "Candidate"},
		{"baseline equals candidate", func(c *Config) { c.Baseline = c.Candidate }, "Baseline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfigLargestSizeFitsInt32(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinExponent = 30
	cfg.MaxExponent = 31
	require.NoError(t, cfg.Validate())

	sizes := cfg.Sizes()
	assert.LessOrEqual(t, sizes[len(sizes)-1], math.MaxInt32)
}

func TestConfigSizes(t *testing.T) {
	cfg := Config{MinExponent: 0, MaxExponent: 4}
	assert.Equal(t, []int{1, 2, 4, 8}, cfg.Sizes())

	cfg = Config{MinExponent: 3, MaxExponent: 3}
	assert.Empty(t, cfg.Sizes())
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	data := []byte(`iterations: 3
max_exponent: 14
distributions:
  - random
  - tail99
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, cfg.Iterations)
	assert.Equal(t, 10, cfg.MinExponent, "unset fields keep their defaults")
	assert.Equal(t, 14, cfg.MaxExponent)
	assert.Equal(t, []string{"random", "tail99"}, cfg.Distributions)
	assert.Equal(t, "samplesort", cfg.Candidate)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: [1, 2"), 0o600))

	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLineSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLineSink(&buf)

	r := harness.Result{
		Algo: "samplesort", Name: "ones", Size: 4, Iterations: 1, Correct: true,
	}
	require.NoError(t, sink.Record(context.Background(), r))
	require.NoError(t, sink.Record(context.Background(), r))

	want := r.Line() + r.Line()
	assert.Equal(t, want, buf.String())
}
