// Package cmd provides the CLI commands for sdbootconf.
package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/efikit/sdbootconf"
	"github.com/efikit/sdbootconf/internal/config"
)

var (
	espFlag     string
	configFlag  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "sdbootconf",
	Short: "Inspect and edit systemd-boot loader configuration",
	Long: `sdbootconf reads and rewrites the configuration of the systemd-boot
loader on the EFI system partition: the loader.conf policy file and the
boot entry definitions under loader/entries.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verboseFlag {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&espFlag, "esp", "", "EFI system partition mount point (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to an sdbootconf settings file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(setDefaultCmd)
	rootCmd.AddCommand(setTimeoutCmd)
	rootCmd.AddCommand(removeEntryCmd)
	rootCmd.AddCommand(exportCmd)
}

// settings resolves the tool settings from --config, the user config
// directory, or the defaults.
func settings() (*config.Settings, error) {
	path := configFlag
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return config.Default(), nil
		}
		path = filepath.Join(dir, "sdbootconf", "sdbootconf.toml")
	}
	return config.Load(path)
}

// loadConf opens the loader configuration tree selected by the
// persistent flags.
func loadConf() (*sdbootconf.Conf, error) {
	s, err := settings()
	if err != nil {
		return nil, err
	}
	esp := s.ESP
	if espFlag != "" {
		esp = espFlag
	}
	slog.Debug("loading loader configuration", "esp", esp)
	return sdbootconf.New(esp)
}
