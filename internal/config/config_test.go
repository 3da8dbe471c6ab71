package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "schedule"
dbname = "schedule"

[calendar]
timezone = "Europe/Moscow"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 3, cfg.Calendar.MaxMonths)
	assert.Equal(t, 0, cfg.Calendar.PrefetchConcurrency)
	assert.False(t, cfg.AvailabilityService.Remote())
	assert.Contains(t, cfg.Database.DSN(), "host=localhost port=5432")

	loc, err := cfg.Calendar.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())

	rng, err := cfg.Calendar.DefaultRange()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimeRange(), rng)
}

func TestLoadRemoteBackendWithoutDatabase(t *testing.T) {
	path := writeConfig(t, `
[availability_service]
url = "http://schedule-primary:8080"
rps = 20
operator_id = 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.AvailabilityService.Remote())
	assert.Equal(t, 10, cfg.AvailabilityService.Burst)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "no backend", body: `[server]
http_port = 8080`},
		{name: "bad timezone", body: `[database]
host = "db"
[calendar]
timezone = "Mars/Olympus"`},
		{name: "bad cron", body: `[database]
host = "db"
[calendar]
janitor_cron = "every minute"`},
		{name: "inverted default range", body: `[database]
host = "db"
[calendar]
default_range_start = "18:00"
default_range_end = "09:00"`},
		{name: "too many months", body: `[database]
host = "db"
[calendar]
max_months = 24`},
		{name: "negative concurrency", body: `[database]
host = "db"
[calendar]
prefetch_concurrency = -1`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
