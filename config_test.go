package acoustics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultSpeedOfSound, cfg.SpeedOfSound)
	assert.Equal(t, DetailMedium, cfg.Detail)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config { return DefaultConfig() }

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero speed of sound", func(c *Config) { c.SpeedOfSound = 0 }},
		{"negative speed of sound", func(c *Config) { c.SpeedOfSound = -343 }},
		{"unknown preset", func(c *Config) { c.Detail = DetailCustom + 1 }},
		{"negative custom order", func(c *Config) { c.Detail = DetailCustom; c.MaxOrder = -1 }},
		{"negative custom distance", func(c *Config) { c.Detail = DetailCustom; c.MaxDistance = -5 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"zero planar tolerance", func(c *Config) { c.Tolerance.Planar = 0 }},
		{"zero coincident tolerance", func(c *Config) { c.Tolerance.Coincident = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestDetailPresetsResolve(t *testing.T) {
	orders := map[DetailPreset]int{
		DetailQuick:    1,
		DetailLow:      2,
		DetailMedium:   3,
		DetailHigh:     4,
		DetailVeryHigh: 6,
	}

	for preset, wantOrder := range orders {
		cfg := DefaultConfig()
		cfg.Detail = preset
		resolved := cfg.resolved()
		assert.Equal(t, wantOrder, resolved.MaxOrder, "preset %d", preset)
		assert.Positive(t, resolved.MaxDistance, "preset %d", preset)
	}
}

func TestCustomDetailKeepsBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detail = DetailCustom
	cfg.MaxOrder = 7
	cfg.MaxDistance = 123
	require.NoError(t, cfg.Validate())

	resolved := cfg.resolved()
	assert.Equal(t, 7, resolved.MaxOrder)
	assert.Equal(t, 123.0, resolved.MaxDistance)
}
