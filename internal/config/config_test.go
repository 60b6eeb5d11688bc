package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty settings get defaults.
	settings := new(Config)

	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultAssetsDir, settings.AssetsDir)
	require.Equal(t, filepath.Join(DefaultAssetsDir, DefaultSoundFilename), settings.DefaultSound)
	require.Equal(t, DefaultTickInterval, settings.TickInterval)
	require.Equal(t, DefaultLogLevel, settings.LogLevel)

	// Not a wav file.
	settings = &Config{DefaultSound: "song.mp3"}
	require.Error(t, Validate(settings))

	// Upper-case extension is fine.
	settings = &Config{DefaultSound: "SONG.WAV"}
	require.NoError(t, Validate(settings))

	// Tick longer than a minute could miss the alarm minute.
	settings = &Config{TickInterval: 2 * time.Minute}
	require.Error(t, Validate(settings))

	// Unknown log level.
	settings = &Config{LogLevel: "verbose"}
	require.Error(t, Validate(settings))

	require.Error(t, Validate(nil))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		AssetsDir:    filepath.Join(dir, "sounds"),
		DefaultSound: filepath.Join(dir, "sounds", "wake.wav"),
		TickInterval: 500 * time.Millisecond,
		LogLevel:     "debug",
		LogFile:      filepath.Join(dir, "clock.log"),
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.Error(t, Save(path, nil))
}

// TestLoadOrDefault falls back to defaults only for a missing file.
func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("tick_interval: [nope"), DefaultFilePermissions))

	_, err = LoadOrDefault(broken)
	require.Error(t, err)
}

// TestLoad_PartialFile keeps defaults for keys absent from the file.
func TestLoad_PartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\ntick_interval: 250ms\n"), DefaultFilePermissions))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	require.Equal(t, DefaultLogFilename, cfg.LogFile)
	require.Equal(t, filepath.Join(DefaultAssetsDir, DefaultSoundFilename), cfg.DefaultSound)
}

// TestLoad_SoundFollowsAssetsDir derives the default sound from a custom assets_dir.
func TestLoad_SoundFollowsAssetsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	assets := filepath.Join(dir, "tones")
	require.NoError(t, os.WriteFile(path, []byte("assets_dir: "+assets+"\n"), DefaultFilePermissions))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, assets, cfg.AssetsDir)
	require.Equal(t, filepath.Join(assets, DefaultSoundFilename), cfg.DefaultSound)
}

// TestInit writes editable defaults once and refuses to clobber them.
func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), DefaultFilePermissions))
	require.ErrorIs(t, Init(path, false), ErrConfigExists)

	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.LogLevel)

	require.NoError(t, Init(path, true))

	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}
