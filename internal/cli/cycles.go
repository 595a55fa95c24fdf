package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/depgraph/transform"
)

// cyclesCommand creates the cycles command.
func (c *CLI) cyclesCommand() *cobra.Command {
	var (
		flags       projectFlags
		input       string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "cycles [root]",
		Short: "List the import cycles of a code base",
		Long: `List the import cycles of the code base under root, or of a graph saved
with "cyclegraph analyze -o graph.json" when --input is given.`,
		Example: `  cyclegraph cycles ./src
  cyclegraph cycles --input graph.json --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var (
				g      *depgraph.Graph
				cycles []transform.Cycle
			)
			if input != "" {
				saved, meta, err := readGraph(input)
				if err != nil {
					return err
				}
				g, cycles = saved, meta.Cycles
			} else {
				cfg, err := flags.load(cmd, args)
				if err != nil {
					return err
				}
				runner := newRunner(ctx, cfg.Cache, logger)
				defer runner.Close()

				res, err := analyze(ctx, runner, cfg, false)
				if err != nil {
					return err
				}
				g, cycles = res.Graph, res.Cycles
			}

			if len(cycles) == 0 {
				printSuccess("No import cycles")
				return nil
			}
			if interactive {
				_, err := tea.NewProgram(newCycleListModel(cycles, g), tea.WithContext(ctx)).Run()
				return err
			}
			fmt.Println(cyclesTable(cycles, g))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "read cycles from a saved JSON graph")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "browse cycles interactively")

	return cmd
}
