package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/shell"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel overrides the log level from the configuration file.
	logLevel string
	// soundPath overrides the default alarm sound.
	soundPath string
	// allowMultiple skips the single instance check.
	allowMultiple bool

	// rootCmd represents the interactive alarm clock.
	rootCmd = &cobra.Command{
		Use:   "alarm-clock",
		Short: "Wake up at a set time to a sound of your choice.",
		Long: `Interactive console alarm clock.

Set the alarm time in 12-hour format (e.g. 7:30 AM) and pick a .wav file from the menu,
then start the clock. When the current time reaches the alarm minute the sound plays
on repeat until any key followed by Enter is pressed.

Settings are read from the configuration file if it exists; defaults are used otherwise.
Run init-config to write the defaults to a file you can edit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &shell.Options{
				ConfigPath:    configPath,
				LogLevel:      logLevel,
				Sound:         soundPath,
				AllowMultiple: allowMultiple,
				In:            cmd.InOrStdin(),
				Out:           cmd.OutOrStdout(),
			}

			return shell.Run(ctx, options)
		},
	}
)

// Execute runs the alarm-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(newInitConfigCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVarP(&soundPath, "sound", "s", "", "default alarm sound (.wav)")

	// Hidden flag for running several clocks side by side while debugging.
	rootCmd.Flags().BoolVar(&allowMultiple, "allow-multiple", false, "skip the single instance check")

	err := rootCmd.Flags().MarkHidden("allow-multiple")
	if err != nil {
		panic(err)
	}
}
