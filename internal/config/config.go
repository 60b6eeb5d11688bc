package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// Config holds the settings of the alarm-clock binary.
type Config struct {
	// AssetsDir is the directory user-provided sounds are copied into.
	AssetsDir string `yaml:"assets_dir"`
	// DefaultSound is the WAV asset used until the user picks another one.
	DefaultSound string `yaml:"default_sound"`
	// TickInterval is how often the engine compares the clock with the alarm time.
	TickInterval time.Duration `yaml:"tick_interval"`
	// LogLevel is the minimum level written to the log.
	LogLevel string `yaml:"log_level"`
	// LogFile is where log messages go; empty means stderr.
	LogFile string `yaml:"log_file"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "alarm-clock-settings.yaml"

	// DefaultAssetsDir is the default directory for alarm sounds.
	DefaultAssetsDir = "sounds"

	// DefaultSoundFilename is the file name of the bundled alarm sound.
	DefaultSoundFilename = "alarm.wav"

	// DefaultTickInterval is the tick written for a missing tick_interval.
	// It must match engine.DefaultTickInterval.
	DefaultTickInterval = time.Second

	// MaxTickInterval keeps at least one tick inside every minute.
	MaxTickInterval = time.Minute

	// DefaultLogLevel is the default minimum log level.
	DefaultLogLevel = "info"

	// DefaultLogFilename is the default log file, kept off the console.
	DefaultLogFilename = "alarm-clock.log"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errTickTooLong is returned when a tick could skip a whole minute.
	errTickTooLong = errors.New("tick interval must not exceed one minute")
	// errSoundNotWAV is returned when the default sound is not a .wav file.
	errSoundNotWAV = errors.New("default sound must be a .wav file")

	// ErrConfigExists is returned by Init when the settings file is already there.
	ErrConfigExists = errors.New("settings file already exists")
)

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	return &Config{
		AssetsDir:    DefaultAssetsDir,
		DefaultSound: filepath.Join(DefaultAssetsDir, DefaultSoundFilename),
		TickInterval: DefaultTickInterval,
		LogLevel:     DefaultLogLevel,
		LogFile:      DefaultLogFilename,
	}
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	// Without an explicit default_sound the sound follows assets_dir.
	cfg.DefaultSound = ""

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Init writes the default settings to path so they can be edited.
// An existing file is kept unless overwrite is set.
func Init(path string, overwrite bool) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	if !overwrite {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat settings: %w", err)
		}
	}

	return Save(path, Default())
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for empty fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.AssetsDir == "" {
		settings.AssetsDir = DefaultAssetsDir
	}

	if settings.DefaultSound == "" {
		settings.DefaultSound = filepath.Join(settings.AssetsDir, DefaultSoundFilename)
	}

	if !strings.EqualFold(filepath.Ext(settings.DefaultSound), ".wav") {
		return fmt.Errorf("%q: %w", settings.DefaultSound, errSoundNotWAV)
	}

	// Set default tick if not specified.
	if settings.TickInterval <= 0 {
		settings.TickInterval = DefaultTickInterval
	}

	if settings.TickInterval > MaxTickInterval {
		return fmt.Errorf("%s: %w", settings.TickInterval, errTickTooLong)
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("invalid log level %q", settings.LogLevel)
	}

	return nil
}
