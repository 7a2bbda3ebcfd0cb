package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/inovacc/curatr/internal/application"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	verboseFlag bool
	sqliteFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A model registry console",
	Long: `Curatr is a terminal console for browsing and curating entries of a
model registry. It provides an interactive table of registered models with
sorting, filtering and pagination, and a detail page for editing a model's
labels, metadata and versions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verboseFlag {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&sqliteFlag, "sqlite", false, "Use the SQLite settings backend instead of BoltDB")
}
