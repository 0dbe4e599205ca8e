package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/efikit/sdbootconf/internal/report"
	inireport "github.com/efikit/sdbootconf/internal/report/ini"
	jsonreport "github.com/efikit/sdbootconf/internal/report/json"
	tomlreport "github.com/efikit/sdbootconf/internal/report/toml"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the loader configuration in a machine-readable format",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: json, toml or ini (default from settings)")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := settings()
	if err != nil {
		return err
	}

	name := exportFormat
	if name == "" {
		name = s.ExportFormat
	}

	var serializer report.Serializer
	switch name {
	case "json":
		serializer = jsonreport.New()
	case "toml":
		serializer = tomlreport.New()
	case "ini":
		serializer = inireport.New()
	default:
		return fmt.Errorf("unknown export format %q", name)
	}

	conf, err := loadConf()
	if err != nil {
		return err
	}

	out, err := serializer.Serialize(report.Tree(conf))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
