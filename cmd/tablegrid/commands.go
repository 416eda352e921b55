package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/commands"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/output"
)

func newGridCommand(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "grid FILE",
		Short: "Print the cell grid of every table in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			doc, err := tablegrid.Load(args[0], opts)
			if err != nil {
				return err
			}
			report, err := tablegrid.Inspect(doc)
			if err != nil {
				return fmt.Errorf("inspection failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				jsonData, err := output.ToJSON(report, opts.Pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(out, string(jsonData))
				return nil
			}
			for i, view := range report.Tables {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "table %d at %d (%d columns, %d rows)\n", i+1, view.Start, view.Width, view.Height)
				output.RenderGrid(out, view)
				for _, p := range view.Problems {
					fmt.Fprintf(out, "problem: %s row=%d pos=%d n=%d\n", p.Type, p.Row, p.Pos, p.N)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the grids as JSON")
	return cmd
}

func newFixCommand(g *globalFlags) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "fix FILE",
		Short: "Repair malformed tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			doc, err := tablegrid.Load(args[0], opts)
			if err != nil {
				return err
			}
			fixed, changed, err := tablegrid.Fix(doc, opts)
			if err != nil {
				return fmt.Errorf("repair failed: %w", err)
			}
			if changed {
				opts.Logger.WithField("file", args[0]).Info("Tables repaired.")
			} else {
				opts.Logger.WithField("file", args[0]).Info("Tables already well formed.")
			}
			return writeResult(cmd, fixed, outputPath, opts)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: JSON on stdout)")
	return cmd
}

func newApplyCommand(g *globalFlags) *cobra.Command {
	var (
		name       string
		anchor     int
		head       int
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply a structural command at a cursor or cell selection",
		Long: `apply runs one structural command. Without --head, --anchor is a text
cursor position; with --head, the cells nearest to both positions span a
cell selection. Run "tablegrid commands" for the command names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			doc, err := tablegrid.Load(args[0], opts)
			if err != nil {
				return err
			}
			state, err := tablegrid.Apply(doc, name, anchor, head, opts)
			if err != nil {
				return fmt.Errorf("%s failed: %w", name, err)
			}
			if state.Selection != nil {
				opts.Logger.WithFields(logrus.Fields{
					"anchor": state.Selection.Anchor(),
					"head":   state.Selection.Head(),
				}).Info("Selection after edit.")
			}
			return writeResult(cmd, state.Doc, outputPath, opts)
		},
	}
	cmd.Flags().StringVar(&name, "command", "", "Command name")
	cmd.Flags().IntVar(&anchor, "anchor", 0, "Anchor (or cursor) position")
	cmd.Flags().IntVar(&head, "head", -1, "Head position; negative means a text cursor at --anchor")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: JSON on stdout)")
	_ = cmd.MarkFlagRequired("command")
	return cmd
}

func newCommandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the structural command names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range commands.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
