package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
)

var setTimeoutCmd = &cobra.Command{
	Use:   "set-timeout <seconds>",
	Short: "Set the boot menu timeout in loader.conf",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetTimeout,
}

func runSetTimeout(cmd *cobra.Command, args []string) error {
	secs, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("timeout must be a non-negative integer, got %q", args[0])
	}

	conf, err := loadConf()
	if err != nil {
		return err
	}

	t := uint(secs)
	conf.Loader.Timeout = &t
	if err := conf.OverwriteLoaderConf(); err != nil {
		return fmt.Errorf("failed to overwrite loader conf: %w", err)
	}

	// Read back what was written.
	if err := conf.LoadConf(); err != nil {
		return fmt.Errorf("failed to reload loader conf: %w", err)
	}
	slog.Info("updated loader conf", "timeout", *conf.Loader.Timeout)
	return nil
}
