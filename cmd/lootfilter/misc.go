package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/lootfilter/version"
)

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [dir]",
		Short: "List filter files under the storage root",
		Long: `ls recursively lists files with the configured extension under dir, or
under the storage root from settings when dir is omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.settings.Root
			if len(args) == 1 {
				root = args[0]
			}

			names, err := a.store(root).Scan()
			if err != nil {
				return err
			}

			for _, name := range names {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), name)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrWriteOutput, err)
				}
			}

			return nil
		},
	}
}

func newSettingsCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings",
		Long: `settings prints the settings file merged with flag overrides, as TOML.
With --save, the result is written back to the settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if save {
				err := a.settings.Save(a.settingsCfg.SettingsPath())
				if err != nil {
					return err
				}
			}

			out, err := toml.Marshal(a.settings)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return writeOutput(cmd, "", out)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "write the effective settings to the settings file")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeOutput(cmd, "", []byte("lootfilter "+version.Get().String()+"\n"))
		},
	}
}
