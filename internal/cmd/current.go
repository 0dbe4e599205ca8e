package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/efikit/sdbootconf/kcmdline"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the id of the entry matching the running kernel",
	Args:  cobra.NoArgs,
	RunE:  runCurrent,
}

func runCurrent(cmd *cobra.Command, args []string) error {
	conf, err := loadConf()
	if err != nil {
		return err
	}

	e := conf.Current(kcmdline.System)
	if e == nil {
		return errors.New("no entry matches the running kernel command line")
	}
	fmt.Println(e.ID)
	return nil
}
