package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	library "github.com/oshokin/alarm-clock/internal/repository/sound"
	"github.com/oshokin/alarm-clock/internal/service/engine"
	"github.com/oshokin/alarm-clock/internal/service/instance"
	"github.com/oshokin/alarm-clock/internal/sound"
	"github.com/oshokin/alarm-clock/internal/ui"
)

// Options controls the alarm-clock process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// LogLevel overrides the log level from the settings when set.
	LogLevel string
	// Sound overrides the default alarm sound when set.
	Sound string
	// AllowMultiple skips the check for other running instances.
	AllowMultiple bool
	// In is the console input, stdin by default.
	In io.Reader
	// Out is the console output, stdout by default.
	Out io.Writer
}

// Run loads the settings, wires the engine to the console and the speaker,
// and shows the menu until the user exits or ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Command line flags override the settings file.
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if opts.Sound != "" {
		cfg.DefaultSound = opts.Sound
	}

	if err = config.Validate(cfg); err != nil {
		return fmt.Errorf("validate configuration: %w", err)
	}

	closeLog, err := logger.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}

	defer closeLog()

	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clock")

	if !opts.AllowMultiple {
		if err = checkSingleInstance(); err != nil {
			return err
		}
	}

	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}

	if out == nil {
		out = os.Stdout
	}

	console := ui.NewConsole(in, out)
	sounds := library.NewFileLibrary(cfg.AssetsDir)

	prepareDefaultSound(ctx, sounds, cfg.DefaultSound)

	alarmEngine := engine.New(
		cfg.DefaultSound,
		sound.NewSpeakerPlayer(),
		console,
		engine.WithTickInterval(cfg.TickInterval),
		engine.WithCue(sound.NewTerminalBell(console)),
	)

	logger.InfoKV(
		ctx,
		"Alarm clock ready",
		"assets_dir", cfg.AssetsDir,
		"default_sound", cfg.DefaultSound,
		"tick_interval", cfg.TickInterval.String(),
	)

	return New(alarmEngine, console, sounds).Loop(ctx)
}

// checkSingleInstance fails when another alarm clock is running.
func checkSingleInstance() error {
	guard, err := instance.NewGuard()
	if err != nil {
		return fmt.Errorf("instance guard: %w", err)
	}

	return guard.Check()
}

// prepareDefaultSound installs the bundled alarm sound when it is the default
// and warns about a missing custom default. Neither case stops the clock:
// a missing asset is reported again when the alarm goes off.
func prepareDefaultSound(ctx context.Context, sounds *library.FileLibrary, reference string) {
	if filepath.Clean(reference) != sounds.BundledPath() {
		if _, err := os.Stat(reference); err != nil {
			logger.WarnKV(ctx, "Default sound is not available", "sound", reference, "error", err)
		}

		return
	}

	asset, err := sounds.InstallBundled()
	if err != nil {
		logger.WarnKV(ctx, "Bundled sound was not installed", "sound", reference, "error", err)

		return
	}

	if !asset.Reused {
		logger.InfoKV(ctx, "Bundled sound installed", "sound", asset.Path)
	}
}
