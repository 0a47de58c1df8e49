package cmd

import (
	"fmt"
	"os"

	"anime-tracker/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "anime-tracker",
	Short: "Anime series and movie tracker",
	Long: `Anime Tracker stores anime series and movies and fills in missing
metadata (descriptions, posters, genres, external links) from public catalogs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with ISO8601 timestamps reads better on a terminal.
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().String("config-dir", ".", "directory holding the .env file")
}
