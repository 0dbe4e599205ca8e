package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loader policy and all boot entries",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	conf, err := loadConf()
	if err != nil {
		return err
	}

	fmt.Println("loader:")
	if conf.Loader.Default != "" {
		fmt.Printf("  default: %s\n", conf.Loader.Default)
	}
	if conf.Loader.Timeout != nil {
		fmt.Printf("  timeout: %d\n", *conf.Loader.Timeout)
	}

	for _, e := range conf.Entries {
		fmt.Printf("  entry: %s\n", e.ID)
		fmt.Printf("    title: %s\n", e.Title)
		fmt.Printf("    linux: %s\n", e.Linux)
		if e.Initrd != "" {
			fmt.Printf("    initrd: %s\n", e.Initrd)
		}
		if len(e.Options) > 0 {
			fmt.Printf("    options: %s\n", strings.Join(e.Options, " "))
		}
	}
	return nil
}
