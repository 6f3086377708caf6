package store

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/timeutil"
)

// Config tells Load where and how to persist collections.
type Config interface {
	BasePath() string
	Driver() Driver
}

// Driver selects the storage backend.
type Driver string

const (
	DriverDiskv  Driver = "diskv"
	DriverSQLite Driver = "sqlite"
)

// ParseDriver validates a driver name. Empty selects diskv.
func ParseDriver(raw string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(raw))); d {
	case "":
		return DriverDiskv, nil
	case DriverDiskv, DriverSQLite:
		return d, nil
	default:
		return "", fmt.Errorf("store: unknown driver %q", raw)
	}
}

// Settings is the resolved daybook configuration.
type Settings struct {
	Path          string
	StoreDriver   Driver
	MinWindowDays int
	MarginDays    int
	RefreshEvery  string
	LogLevel      slog.Level
}

func (s *Settings) BasePath() string {
	return s.Path
}

func (s *Settings) Driver() Driver {
	return s.StoreDriver
}

// LoadConfig reads .daybook.yaml from $DAYBOOK_CONFIG_PATH or the working
// directory. Every key can be overridden with a DAYBOOK_ environment variable,
// e.g. DAYBOOK_TIMELINE_MARGIN=3w.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", "~/.daybook.db")
	v.SetDefault("driver", string(DriverDiskv))
	v.SetDefault("timeline.min-window", "30d")
	v.SetDefault("timeline.margin", "2w")
	v.SetDefault("refresh", "1m")
	v.SetDefault("log-level", "warn")
	v.SetConfigName(".daybook") // .yaml is implicit
	v.SetEnvPrefix("DAYBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return settingsFrom(v)
}

func settingsFrom(v *viper.Viper) (*Settings, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	driver, err := ParseDriver(v.GetString("driver"))
	if err != nil {
		return nil, err
	}
	minWindow, err := timeutil.ParseDays(v.GetString("timeline.min-window"))
	if err != nil {
		return nil, fmt.Errorf("store: timeline.min-window: %w", err)
	}
	margin, err := timeutil.ParseDays(v.GetString("timeline.margin"))
	if err != nil {
		return nil, fmt.Errorf("store: timeline.margin: %w", err)
	}
	if _, err := timeutil.Parse(v.GetString("refresh")); err != nil {
		return nil, fmt.Errorf("store: refresh: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return nil, fmt.Errorf("store: log-level: %w", err)
	}
	return &Settings{
		Path:          path,
		StoreDriver:   driver,
		MinWindowDays: minWindow,
		MarginDays:    margin,
		RefreshEvery:  v.GetString("refresh"),
		LogLevel:      level,
	}, nil
}
