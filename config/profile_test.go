package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/on-the-ground/sampled_go/config"
	"github.com/on-the-ground/sampled_go/shared/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extendedProfile = `
name: identity-extended
function: identity
mode: extended
lower: -2
step: 0.5
atLeast: 1
subsamples: 4
stop:
  below: 0
  atOrAbove: 8.2
`

func TestParse_Defaults(t *testing.T) {
	p, err := config.Parse([]byte("function: sin\nupper: 1\nsize: 10\n"))
	require.NoError(t, err)

	assert.Equal(t, config.ModeFixed, p.Mode)
	assert.Equal(t, 1, p.Subsamples)
	assert.Equal(t, log.LogInfo, p.LogLevel)
	assert.Equal(t, 10, p.Size)
	assert.NoError(t, p.Validate())
}

func TestParse_ExtendedProfile(t *testing.T) {
	p, err := config.Parse([]byte(extendedProfile))
	require.NoError(t, err)
	require.NoError(t, p.Validate())

	assert.Equal(t, config.ModeExtended, p.Mode)
	assert.Equal(t, -2.0, p.Lower)
	assert.Equal(t, 0.5, p.Step)
	assert.Equal(t, 1.0, p.AtLeast)
	require.NotNil(t, p.Stop.Below)
	require.NotNil(t, p.Stop.AtOrAbove)
	assert.Equal(t, "stop:below=0:atOrAbove=8.2", p.Stop.String())

	assert.True(t, p.Stop.Stops(0, -0.1))
	assert.False(t, p.Stop.Stops(0, 0))
	assert.False(t, p.Stop.Stops(0, 8.0))
	assert.True(t, p.Stop.Stops(0, 8.2))
}

func TestParse_Malformed(t *testing.T) {
	_, err := config.Parse([]byte("size: [1, 2"))
	assert.Error(t, err)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	p := &config.Profile{Mode: "spiral", LogLevel: "loud", MaxSamples: -1}
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidProfile))
	for _, want := range []string{"function is required", "unknown mode", "loud", "maxSamples"} {
		assert.Contains(t, err.Error(), want)
	}

	p = &config.Profile{Function: "exp", Mode: config.ModeExtended, LogLevel: log.LogInfo}
	assert.ErrorContains(t, p.Validate(), "stop rule")
}

func TestApplyEnv(t *testing.T) {
	p, err := config.Parse([]byte(extendedProfile))
	require.NoError(t, err)

	env := map[string]string{
		config.EnvLogLevel:   "debug",
		config.EnvMaxSamples: "500",
		config.EnvSubsamples: "8",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	require.NoError(t, p.ApplyEnv(lookup))
	assert.Equal(t, log.LogDebug, p.LogLevel)
	assert.Equal(t, 500, p.MaxSamples)
	assert.Equal(t, 8, p.Subsamples)

	env[config.EnvMaxSamples] = "many"
	env[config.EnvLogLevel] = "shout"
	err = p.ApplyEnv(lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvMaxSamples)
	assert.Contains(t, err.Error(), config.EnvLogLevel)
}

func TestLoad_WithEnvFile(t *testing.T) {
	for _, k := range []string{config.EnvLogLevel, config.EnvMaxSamples, config.EnvSubsamples} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile.yaml")
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(profilePath, []byte(extendedProfile), 0o600))
	require.NoError(t, os.WriteFile(envPath, []byte("SAMPLED_SUBSAMPLES=2\n"), 0o600))

	p, err := config.Load(profilePath, envPath)
	require.NoError(t, err)
	assert.Equal(t, "identity-extended", p.Name)
	assert.Equal(t, 2, p.Subsamples)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
