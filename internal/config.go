package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys. Flags, config file entries and RADAR_* environment variables share them.
const (
	KeyHost           = "host"
	KeyPort           = "port"
	KeyLatitude       = "lat"
	KeyLongitude      = "long"
	KeyCities         = "cities"
	KeyDisableLatLong = "disable-lat-long"
	KeyStale          = "stale"
	KeyReadTimeout    = "read-timeout"
	KeyTick           = "tick"
	KeyBatch          = "batch"
	KeyCoverageDedup  = "coverage-dedup"
	KeyWatch          = "watch"
	KeyTicker         = "ticker"
	KeySummary        = "summary"
	KeyLogFile        = "log-file"
	KeyLogLevel       = "log-level"
	KeyConfig         = "config"

	envPrefix = "RADAR"
)

// Defaults.
const (
	DefaultHost        = "localhost"
	DefaultPort        = 30002
	DefaultTick        = 10 * time.Millisecond
	DefaultBatch       = 256
	DefaultSummary     = time.Minute
	DefaultLogFile     = "radar.log"
	DefaultLogLevel    = "info"
	maxPort            = 65535
	maxLatitude        = 90
	maxLongitude       = 180
	cityFieldCount     = 3
	cityNameField      = 0
	cityLatitudeField  = 1
	cityLongitudeField = 2
)

var (
	ErrMissingLocation = errors.New("antenna location missing, set both --lat and --long")
	ErrOutOfRange      = errors.New("value out of range")
	ErrMalformedCity   = errors.New("malformed city, expected (name,lat,long)")
)

// City is a named reference point drawn on the plots.
type City struct {
	Name      string
	Latitude  float64
	Longitude float64
}

func (c City) Point() Point {
	return Point{Latitude: c.Latitude, Longitude: c.Longitude}
}

// ParseCity parses "(name,lat,long)". The parentheses are optional.
func ParseCity(s string) (City, error) {
	fields := strings.Split(strings.Trim(strings.TrimSpace(s), "()"), ",")
	if len(fields) != cityFieldCount {
		return City{}, fmt.Errorf("parseCity %q: %w", s, ErrMalformedCity)
	}

	name := strings.TrimSpace(fields[cityNameField])
	if name == "" {
		return City{}, fmt.Errorf("parseCity %q: %w", s, ErrMalformedCity)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(fields[cityLatitudeField]), 64)
	if err != nil {
		return City{}, fmt.Errorf("parseCity %q: %w: %w", s, ErrMalformedCity, err)
	}

	long, err := strconv.ParseFloat(strings.TrimSpace(fields[cityLongitudeField]), 64)
	if err != nil {
		return City{}, fmt.Errorf("parseCity %q: %w: %w", s, ErrMalformedCity, err)
	}

	return City{Name: name, Latitude: lat, Longitude: long}, nil
}

// Config is the complete startup configuration.
type Config struct {
	Host           string
	Port           int
	Home           Point
	Cities         []City
	DisableLatLong bool
	Stale          time.Duration
	ReadTimeout    time.Duration
	Tick           time.Duration
	Batch          int
	CoverageDedup  bool
	Watch          []string
	Ticker         bool
	Summary        time.Duration
	LogFile        string
	LogLevel       slog.Level
}

// RegisterFlags declares every command line flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyHost, DefaultHost, "host of the demodulator's raw output")
	fs.Int(KeyPort, DefaultPort, "port of the demodulator's raw output")
	fs.Float64(KeyLatitude, 0, "antenna location latitude (required)")
	fs.Float64(KeyLongitude, 0, "antenna location longitude (required)")
	fs.StringArray(KeyCities, nil, "city drawn on the plots as (name,lat,long), may be repeated")
	fs.Bool(KeyDisableLatLong, false, "disable output of latitude and longitude on the map")
	fs.Duration(KeyStale, DefaultStaleThreshold, "remove aircraft silent for longer than this")
	fs.Duration(KeyReadTimeout, DefaultReadTimeout, "deadline of a single feed read")
	fs.Duration(KeyTick, DefaultTick, "interval of the ingest and render loop")
	fs.Int(KeyBatch, DefaultBatch, "maximum number of feed lines ingested per tick")
	fs.Bool(KeyCoverageDedup, false, "keep only one coverage sample per 0.001 degree cell")
	fs.StringSlice(KeyWatch, nil, "callsigns or hex addresses to send a desktop notification for")
	fs.BoolP(KeyTicker, "t", false, "print aircraft events on the command line without TUI")
	fs.Lookup(KeyTicker).NoOptDefVal = "true"
	fs.Duration(KeySummary, DefaultSummary, "interval of the ticker summary")
	fs.String(KeyLogFile, DefaultLogFile, "log file used while the TUI owns the terminal")
	fs.String(KeyLogLevel, DefaultLogLevel, "log level: debug, info, warn or error")
	fs.String(KeyConfig, "", "optional config file (json, yaml or toml)")
}

// LoadConfig layers parsed flags over RADAR_* environment variables, an optional config file
// and the flag defaults, then validates the result.
func LoadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("loadConfig: error reading config file: %w", err)
		}
	}

	return configFromViper(v)
}

func configFromViper(v *viper.Viper) (Config, error) {
	if !v.IsSet(KeyLatitude) || !v.IsSet(KeyLongitude) {
		return Config{}, fmt.Errorf("loadConfig: %w", ErrMissingLocation)
	}

	cfg := Config{
		Host:           v.GetString(KeyHost),
		Port:           v.GetInt(KeyPort),
		Home:           Point{Latitude: v.GetFloat64(KeyLatitude), Longitude: v.GetFloat64(KeyLongitude)},
		DisableLatLong: v.GetBool(KeyDisableLatLong),
		Stale:          v.GetDuration(KeyStale),
		ReadTimeout:    v.GetDuration(KeyReadTimeout),
		Tick:           v.GetDuration(KeyTick),
		Batch:          v.GetInt(KeyBatch),
		CoverageDedup:  v.GetBool(KeyCoverageDedup),
		Watch:          v.GetStringSlice(KeyWatch),
		Ticker:         v.GetBool(KeyTicker),
		Summary:        v.GetDuration(KeySummary),
		LogFile:        v.GetString(KeyLogFile),
	}

	for _, raw := range v.GetStringSlice(KeyCities) {
		city, err := ParseCity(raw)
		if err != nil {
			return Config{}, fmt.Errorf("loadConfig: %w", err)
		}
		cfg.Cities = append(cfg.Cities, city)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %s: %w", KeyLogLevel, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}

	return cfg, nil
}

func (cfg Config) validate() error {
	switch {
	case cfg.Home.Latitude < -maxLatitude || cfg.Home.Latitude > maxLatitude:
		return fmt.Errorf("%s %v: %w", KeyLatitude, cfg.Home.Latitude, ErrOutOfRange)
	case cfg.Home.Longitude < -maxLongitude || cfg.Home.Longitude > maxLongitude:
		return fmt.Errorf("%s %v: %w", KeyLongitude, cfg.Home.Longitude, ErrOutOfRange)
	case cfg.Port <= 0 || cfg.Port > maxPort:
		return fmt.Errorf("%s %d: %w", KeyPort, cfg.Port, ErrOutOfRange)
	case cfg.Stale <= 0:
		return fmt.Errorf("%s %v: %w", KeyStale, cfg.Stale, ErrOutOfRange)
	case cfg.ReadTimeout <= 0:
		return fmt.Errorf("%s %v: %w", KeyReadTimeout, cfg.ReadTimeout, ErrOutOfRange)
	case cfg.Tick <= 0:
		return fmt.Errorf("%s %v: %w", KeyTick, cfg.Tick, ErrOutOfRange)
	case cfg.Batch <= 0:
		return fmt.Errorf("%s %d: %w", KeyBatch, cfg.Batch, ErrOutOfRange)
	case cfg.Summary <= 0:
		return fmt.Errorf("%s %v: %w", KeySummary, cfg.Summary, ErrOutOfRange)
	}

	return nil
}
