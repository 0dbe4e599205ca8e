package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var removeEntryCmd = &cobra.Command{
	Use:   "remove-entry <entry-id>",
	Short: "Delete a boot entry definition file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemoveEntry,
}

func runRemoveEntry(cmd *cobra.Command, args []string) error {
	conf, err := loadConf()
	if err != nil {
		return err
	}

	id := args[0]
	if err := conf.RemoveEntryConf(id); err != nil {
		return fmt.Errorf("failed to remove entry %q: %w", id, err)
	}

	if conf.Loader.Default == id {
		slog.Warn("loader conf still names the removed entry as default", "id", id)
	}
	slog.Info("removed entry", "id", id)
	return nil
}
