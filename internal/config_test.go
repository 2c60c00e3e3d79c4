package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadArgs(t *testing.T, args ...string) (Config, error) {
	t.Helper()

	fs := pflag.NewFlagSet("radar", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))

	return LoadConfig(fs)
}

func TestParseCity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    City
		wantErr bool
	}{
		{"parenthesised", "(Frankfurt,50.11,8.68)", City{"Frankfurt", 50.11, 8.68}, false},
		{"bare", "Oslo,59.91,10.75", City{"Oslo", 59.91, 10.75}, false},
		{"spaces", " ( New York , 40.71 , -74.0 ) ", City{"New York", 40.71, -74.0}, false},
		{"two fields", "(Oslo,59.91)", City{}, true},
		{"four fields", "(Oslo,59.91,10.75,3)", City{}, true},
		{"bad latitude", "(Oslo,north,10.75)", City{}, true},
		{"bad longitude", "(Oslo,59.91,east)", City{}, true},
		{"no name", "(,59.91,10.75)", City{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCity(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedCity)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadArgs(t, "--lat=40.6", "--long=-73.8")
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, Point{Latitude: 40.6, Longitude: -73.8}, cfg.Home)
	assert.Empty(t, cfg.Cities)
	assert.False(t, cfg.DisableLatLong)
	assert.Equal(t, DefaultStaleThreshold, cfg.Stale)
	assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, DefaultTick, cfg.Tick)
	assert.Equal(t, DefaultBatch, cfg.Batch)
	assert.False(t, cfg.CoverageDedup)
	assert.False(t, cfg.Ticker)
	assert.Equal(t, DefaultSummary, cfg.Summary)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := loadArgs(t,
		"--host", "radar.local",
		"--port", "30005",
		"--lat=52.3",
		"--long=4.76",
		"--cities", "(Amsterdam,52.37,4.9)",
		"--cities", "(Rotterdam,51.92,4.48)",
		"--disable-lat-long",
		"--stale", "30s",
		"--watch", "KLM1023,4840D6",
		"--log-level", "debug",
		"-t",
	)
	require.NoError(t, err)

	assert.Equal(t, "radar.local", cfg.Host)
	assert.Equal(t, 30005, cfg.Port)
	assert.Equal(t, []City{{"Amsterdam", 52.37, 4.9}, {"Rotterdam", 51.92, 4.48}}, cfg.Cities)
	assert.True(t, cfg.DisableLatLong)
	assert.Equal(t, 30*time.Second, cfg.Stale)
	assert.Equal(t, []string{"KLM1023", "4840D6"}, cfg.Watch)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.Ticker)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("RADAR_LAT", "48.35")
	t.Setenv("RADAR_LONG", "11.78")
	t.Setenv("RADAR_READ_TIMEOUT", "80ms")

	cfg, err := loadArgs(t)
	require.NoError(t, err)

	assert.Equal(t, Point{Latitude: 48.35, Longitude: 11.78}, cfg.Home)
	assert.Equal(t, 80*time.Millisecond, cfg.ReadTimeout)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radar.json")
	content := `{
		"lat": 51.47,
		"long": -0.45,
		"cities": ["(London,51.51,-0.13)"],
		"coverage-dedup": true,
		"batch": 64
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := loadArgs(t, "--config", path, "--batch", "32")
	require.NoError(t, err)

	assert.Equal(t, Point{Latitude: 51.47, Longitude: -0.45}, cfg.Home)
	assert.Equal(t, []City{{"London", 51.51, -0.13}}, cfg.Cities)
	assert.True(t, cfg.CoverageDedup)
	assert.Equal(t, 32, cfg.Batch, "flags win over the config file")
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"missing location", nil, ErrMissingLocation},
		{"missing longitude", []string{"--lat=10"}, ErrMissingLocation},
		{"latitude range", []string{"--lat=91", "--long=0"}, ErrOutOfRange},
		{"longitude range", []string{"--lat=0", "--long=-180.5"}, ErrOutOfRange},
		{"port", []string{"--lat=0", "--long=0", "--port=0"}, ErrOutOfRange},
		{"batch", []string{"--lat=0", "--long=0", "--batch=0"}, ErrOutOfRange},
		{"stale", []string{"--lat=0", "--long=0", "--stale=0s"}, ErrOutOfRange},
		{"city", []string{"--lat=0", "--long=0", "--cities", "(Nowhere)"}, ErrMalformedCity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadArgs(t, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadArgs(t, "--lat=0", "--long=0", "--config", "/nonexistent/radar.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfigBadLogLevel(t *testing.T) {
	_, err := loadArgs(t, "--lat=0", "--long=0", "--log-level", "loud")
	assert.Error(t, err)
}
