package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var setDefaultCmd = &cobra.Command{
	Use:   "set-default <entry-id>",
	Short: "Set the default boot entry in loader.conf",
	Long: `Set the default boot entry in loader.conf.

The id is an entry definition's file name without the .conf extension.
Setting an id with no matching entry is allowed (the entry may be
installed later) but logged as a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runSetDefault,
}

func runSetDefault(cmd *cobra.Command, args []string) error {
	conf, err := loadConf()
	if err != nil {
		return err
	}

	id := args[0]
	if !conf.EntryExists(id) {
		slog.Warn("default does not name a loaded entry", "id", id)
	}

	conf.Loader.Default = id
	if err := conf.OverwriteLoaderConf(); err != nil {
		return fmt.Errorf("failed to overwrite loader conf: %w", err)
	}
	slog.Info("updated loader conf", "default", id)
	return nil
}
