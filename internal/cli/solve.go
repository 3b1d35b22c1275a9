package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pencilmark/pencilmark/internal/puzzle"
)

// SolveResult is the JSON payload for a solved puzzle.
type SolveResult struct {
	Givens   string `json:"givens"`
	Solution string `json:"solution"`
	Unique   *bool  `json:"unique,omitempty"`
	Nodes    int    `json:"nodes"`
}

// NewSolveCommand creates the solve subcommand.
func NewSolveCommand(opts *RootOptions) *cobra.Command {
	var (
		file        string
		checkUnique bool
	)

	cmd := &cobra.Command{
		Use:   "solve [grid]",
		Short: "Solve an 81-character puzzle grid",
		Long: `Solve a puzzle given as an 81-character grid line ('.' or '0' for
empty cells), either as an argument or from a file via --file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			var input string
			switch {
			case len(args) == 1 && file == "":
				input = args[0]
			case len(args) == 0 && file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return WrapExitError(ExitCommandError, "read puzzle file", err)
				}
				input = string(data)
			default:
				return NewExitError(ExitCommandError, "provide a grid argument or --file, not both")
			}

			clues, err := puzzle.ParseGrid(input)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid grid", err)
			}

			res := SolveResult{Givens: puzzle.FormatGrid(clues)}

			if checkUnique {
				unique, stats, err := puzzle.Unique(cmd.Context(), clues)
				if err != nil {
					return WrapExitError(ExitFailure, "uniqueness check", err)
				}
				res.Unique = &unique
				res.Nodes += stats.Nodes
				if !unique {
					if opts.Format == "json" {
						out.Success(res)
					}
					return NewExitError(ExitFailure, "puzzle does not have a unique solution")
				}
			}

			solved, stats, err := puzzle.Solve(cmd.Context(), clues)
			if err != nil {
				return WrapExitError(ExitFailure, "solve puzzle", err)
			}
			res.Solution = puzzle.FormatGrid(solved)
			res.Nodes += stats.Nodes
			out.VerboseLog("%d nodes in %s", stats.Nodes, stats.Duration)

			if opts.Format == "json" {
				return out.Success(res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Solution)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the grid from a file")
	cmd.Flags().BoolVar(&checkUnique, "check-unique", false, "fail unless the solution is unique")

	return cmd
}
