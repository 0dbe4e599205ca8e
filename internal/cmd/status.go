package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/efikit/sdbootconf"
	"github.com/efikit/sdbootconf/kcmdline"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show default-entry validity and the currently booted entry",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	conf, err := loadConf()
	if err != nil {
		return err
	}

	switch conf.DefaultEntryState() {
	case sdbootconf.NotDefined:
		fmt.Println("default entry: not defined")
	case sdbootconf.Exists:
		fmt.Printf("default entry: %s\n", conf.Loader.Default)
	case sdbootconf.DoesNotExist:
		fmt.Printf("default entry: %s (no such entry)\n", conf.Loader.Default)
	}

	if e := conf.Current(kcmdline.System); e != nil {
		fmt.Printf("booted entry: %s\n", e.ID)
	} else {
		fmt.Println("booted entry: unknown")
	}
	return nil
}
