package runconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cuemby/swanling/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swanling.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadAppliesDefaultsForUnsetFields(t *testing.T) {
	path := writeConfig(t, "host: http://example.com\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Users)
	assert.Equal(t, 1.0, cfg.HatchRate)
	assert.Equal(t, "disabled", cfg.CoMitigation)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "host: http://example.com\nusers: 50\nco_mitigation: average\nrun_time: 30s\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Users)
	assert.Equal(t, types.CadenceAverage, cfg.CadencePolicy())

	d, err := cfg.RunTimeDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestLoadMissingHostFails(t *testing.T) {
	path := writeConfig(t, "users: 5\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidCoMitigationFails(t *testing.T) {
	path := writeConfig(t, "host: http://example.com\nco_mitigation: bogus\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidRunTimeFails(t *testing.T) {
	path := writeConfig(t, "host: http://example.com\nrun_time: not-a-duration\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunTimeDurationUnsetReturnsZero(t *testing.T) {
	cfg := Default()
	cfg.Host = "http://example.com"
	d, err := cfg.RunTimeDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
}
