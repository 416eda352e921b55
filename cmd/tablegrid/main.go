// Package main provides the CLI entry point for tablegrid-go.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/output"
)

// globalFlags holds the flags shared by every command.
type globalFlags struct {
	configFile         string
	logLevel           string
	logFormat          string
	sheet              string
	rangeRef           string
	headerRows         int
	noWidths           bool
	pretty             bool
	legacyHeaderToggle bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:   "tablegrid",
		Short: "Inspect, repair and edit tables with merged cells",
		Long: `tablegrid-go reads documents holding tables (JSON, YAML or xlsx),
shows their cell grids, repairs malformed tables and applies structural
edits such as adding columns or merging cells.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyEnvironment(cmd, g.configFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configFile, "config", "", "YAML config file with flag defaults")
	flags.StringVar(&g.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&g.logFormat, "log-format", "text", "Log format: text, json")
	flags.StringVar(&g.sheet, "sheet", "", "Spreadsheet sheet to read or write")
	flags.StringVar(&g.rangeRef, "range", "", "Spreadsheet range to import, like A1:D10")
	flags.IntVar(&g.headerRows, "header-rows", 0, "Spreadsheet rows imported as the table head")
	flags.BoolVar(&g.noWidths, "no-widths", false, "Do not import spreadsheet column widths")
	flags.BoolVar(&g.pretty, "pretty", false, "Pretty-print JSON output")
	flags.BoolVar(&g.legacyHeaderToggle, "legacy-header-toggle", false, "Header toggles flip every selected row or column")

	rootCmd.AddCommand(
		newGridCommand(&g),
		newFixCommand(&g),
		newApplyCommand(&g),
		newCommandsCommand(),
	)
	return rootCmd
}

// options builds the document options and logger from the global flags.
func (g *globalFlags) options(stderr io.Writer) (tablegrid.Options, error) {
	logger, err := newLogger(g.logLevel, g.logFormat, stderr)
	if err != nil {
		return tablegrid.Options{}, err
	}
	widths := !g.noWidths
	return tablegrid.Options{
		Sheet:              g.sheet,
		Range:              g.rangeRef,
		HeaderRows:         g.headerRows,
		Widths:             &widths,
		Pretty:             g.pretty,
		LegacyHeaderToggle: g.legacyHeaderToggle,
		Logger:             logger,
	}, nil
}

func newLogger(level, format string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be text or json)", format)
	}
	return l, nil
}

// writeResult saves doc to outputPath, or prints it as JSON when no path
// is given.
func writeResult(cmd *cobra.Command, doc *model.Node, outputPath string, opts tablegrid.Options) error {
	if outputPath != "" {
		if err := tablegrid.Save(outputPath, doc, opts); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	jsonData, err := output.ToJSON(doc, opts.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
