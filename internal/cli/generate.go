package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pencilmark/pencilmark/internal/puzzle"
)

// GenerateResult is the JSON payload for one generated puzzle.
type GenerateResult struct {
	Seed       int64  `json:"seed"`
	Difficulty string `json:"difficulty"`
	Givens     string `json:"givens"`
	GivenCount int    `json:"given_count"`
	Solution   string `json:"solution,omitempty"`
}

// NewGenerateCommand creates the generate subcommand.
func NewGenerateCommand(opts *RootOptions) *cobra.Command {
	var (
		difficulty   string
		seed         int64
		count        int
		withSolution bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate puzzles with a unique solution",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			diff, err := puzzle.ParseDifficulty(difficulty)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid difficulty", err)
			}
			if count < 1 {
				return NewExitError(ExitCommandError, "count must be at least 1")
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			for i := 0; i < count; i++ {
				p, stats, err := puzzle.Generate(cmd.Context(), seed+int64(i), diff)
				if err != nil {
					return WrapExitError(ExitFailure, "generate puzzle", err)
				}
				out.VerboseLog("seed %d: %d nodes in %s", p.Seed, stats.Nodes, stats.Duration)

				res := GenerateResult{
					Seed:       p.Seed,
					Difficulty: p.Difficulty.String(),
					Givens:     puzzle.FormatGrid(p.Clues),
					GivenCount: puzzle.CountGivens(p.Clues),
				}
				if withSolution {
					res.Solution = puzzle.FormatGrid(p.Solution)
				}

				if opts.Format == "json" {
					if err := out.Success(res); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res.Givens)
				if withSolution {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res.Solution)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "easy|medium|hard|expert")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generation seed (0 = time-based)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of puzzles")
	cmd.Flags().BoolVar(&withSolution, "solution", false, "also print the solution")

	return cmd
}
