package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pencilmark/pencilmark/internal/puzzle"
	"github.com/pencilmark/pencilmark/internal/puzzlepack"
)

// PackInfo is the JSON payload for a validated pack.
type PackInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Puzzles     []PackEntry `json:"puzzles"`
}

// PackEntry describes one puzzle in a pack listing.
type PackEntry struct {
	Label      string `json:"label"`
	Difficulty string `json:"difficulty"`
	Givens     int    `json:"givens"`
}

// NewPacksCommand creates the packs subcommand.
func NewPacksCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Inspect puzzle packs",
	}
	cmd.AddCommand(newPacksShowCommand(opts))
	return cmd
}

func newPacksShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <dir>",
		Short: "Validate a pack directory and list its puzzles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			pack, err := puzzlepack.LoadDir(cmd.Context(), args[0])
			if err != nil {
				var pe *puzzlepack.PackError
				if errors.As(err, &pe) {
					out.Error(pe.Code, pe.Message, nil)
					code := ExitFailure
					if pe.Code == puzzlepack.ErrCodePackNotFound {
						code = ExitCommandError
					}
					return NewExitError(code, "pack validation failed")
				}
				return WrapExitError(ExitCommandError, "load pack", err)
			}

			info := PackInfo{Name: pack.Name, Description: pack.Description}
			for _, e := range pack.Puzzles {
				info.Puzzles = append(info.Puzzles, PackEntry{
					Label:      e.Label,
					Difficulty: e.Difficulty.String(),
					Givens:     puzzle.CountGivens(e.Clues),
				})
			}

			if opts.Format == "json" {
				return out.Success(info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d puzzles)\n", info.Name, len(info.Puzzles))
			for _, e := range info.Puzzles {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-24s %-8s %d givens\n", e.Label, e.Difficulty, e.Givens)
			}
			return nil
		},
	}
}
