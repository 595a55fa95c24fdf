package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclegraph/pkg/pipeline"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		flags        projectFlags
		output       string
		demo         bool
		failOnCycles bool
		scale        float64
	)

	cmd := &cobra.Command{
		Use:   "analyze [root]",
		Short: "Build the import graph and report cycles",
		Long: `Build the import graph between the components under root and mark every import cycle.

The output format follows the extension of --output: .dot/.gv for DOT, .json
for a graph that can be re-rendered later, .svg/.png/.jpg/.pdf for an image.`,
		Example: `  cyclegraph analyze ./src -o deps.svg
  cyclegraph analyze --only-cyclic --remove-isolated -o cycles.dot
  cyclegraph analyze --demo -o demo.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Output.File = output
			}

			runner := newRunner(ctx, cfg.Cache, logger)
			defer runner.Close()

			prog := newProgress(logger)
			res, err := analyze(ctx, runner, cfg, demo)
			if err != nil {
				return err
			}
			prog.done("Analysis finished", "components", len(res.Components), "cycles", len(res.Cycles))

			printStats(res.Graph.NodeCount(), res.Graph.EdgeCount(), len(res.Cycles))
			if len(res.Cycles) > 0 {
				fmt.Println(cyclesTable(res.Cycles, res.Graph))
			} else {
				printSuccess("No import cycles")
			}
			if res.Stats.ParseFailures > 0 {
				printWarning("%s could not be parsed", plural(res.Stats.ParseFailures, "module"))
			}

			if cfg.Output.File != "" {
				err := pipeline.Export(ctx, res.Graph, res.Meta(), cfg.Output.File, newRenderer(scale))
				if err != nil {
					return err
				}
				printFile(cfg.Output.File)
				if pipeline.FormatForPath(cfg.Output.File) == pipeline.FormatJSON {
					printNextStep("Render it with", "cyclegraph render "+cfg.Output.File+" -o graph.svg")
				}
			}

			if failOnCycles && len(res.Cycles) > 0 {
				return fmt.Errorf("%s found", plural(len(res.Cycles), "import cycle"))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the graph to this file (.dot, .gv, .json, .svg, .png, .jpg, .pdf)")
	cmd.Flags().BoolVar(&demo, "demo", false, "analyze the built-in demo graph")
	cmd.Flags().BoolVar(&failOnCycles, "fail-on-cycles", false, "exit with an error when cycles are found")
	cmd.Flags().Float64Var(&scale, "scale", 1, "PNG scale factor (above 1 needs rsvg-convert)")

	return cmd
}
