package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
)

// newInitConfigCommand creates the command that writes the default settings file.
func newInitConfigCommand() *cobra.Command {
	var (
		path  string
		force bool
	)

	command := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default settings to the configuration file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(path, force); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", path)

			return err
		},
	}

	command.Flags().StringVarP(&path, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	command.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return command
}
