package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wildsight/wildsight-go/cmd/export"
	"github.com/wildsight/wildsight-go/cmd/importer"
	"github.com/wildsight/wildsight-go/cmd/jobs"
	"github.com/wildsight/wildsight-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wildsight",
		Short: "WildSight CLI",
		Long:  `WildSight is a personal wildlife sighting record keeper with CSV import and export.`,
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, settings); err != nil {
		cobra.CheckErr(err)
	}

	subcommands := []*cobra.Command{
		export.Command(settings),
		importer.Command(settings),
		jobs.Command(settings),
	}

	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.DataExchange.Path, "data-path", viper.GetString("dataexchange.path"), "Directory for import and export files")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
