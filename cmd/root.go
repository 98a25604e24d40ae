// Package cmd assembles the carnet command line interface.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/carnetapp/carnet-go/cmd/clear"
	"github.com/carnetapp/carnet-go/cmd/exports"
	"github.com/carnetapp/carnet-go/cmd/imports"
	"github.com/carnetapp/carnet-go/cmd/list"
	"github.com/carnetapp/carnet-go/cmd/transfer"
	"github.com/carnetapp/carnet-go/internal/conf"
	"github.com/carnetapp/carnet-go/internal/datastore"
	"github.com/carnetapp/carnet-go/internal/importer"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "carnet",
		Short: "Carnet client records CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize(settings)
		},
	}

	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		list.Command(settings),
		imports.Command(settings),
		exports.Command(settings),
		transfer.Command(settings),
		clear.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// initialize applies the logging settings before any subcommand runs. Runs
// after flag parsing, so --debug is already reflected in settings.
func initialize(settings *conf.Settings) error {
	if settings.Log.Enabled {
		if err := datastore.InitializeLogger(settings.Log.Path); err != nil {
			return err
		}
	}
	if settings.Debug {
		datastore.SetLogLevel(slog.LevelDebug)
		importer.SetLogLevel(slog.LevelDebug)
	}
	return nil
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Main.Path, "main-db", viper.GetString("main.path"), "Path to the main store database file")
	rootCmd.PersistentFlags().StringVar(&settings.Archive.Path, "archive-db", viper.GetString("archive.path"), "Path to the archive store database file")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
