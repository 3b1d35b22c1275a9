package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/game"
	"github.com/pencilmark/pencilmark/internal/keymap"
	"github.com/pencilmark/pencilmark/internal/puzzle"
	"github.com/pencilmark/pencilmark/internal/puzzlepack"
	"github.com/pencilmark/pencilmark/internal/store"
	"github.com/pencilmark/pencilmark/internal/tui"
)

// NewPlayCommand creates the play subcommand.
func NewPlayCommand(opts *RootOptions) *cobra.Command {
	var (
		difficulty string
		seed       int64
		packDir    string
		packLabel  string
		keymapPath string
		resume     string
		ephemeral  bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play Sudoku in the terminal",
		Long: `Play starts an interactive game. By default a puzzle is generated at
the requested difficulty; --pack deals from a puzzle pack instead, and
--resume continues a saved session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			km := keymap.Default()
			if keymapPath != "" {
				var err error
				if km, err = keymap.Load(keymapPath); err != nil {
					return WrapExitError(ExitCommandError, "load keymap", err)
				}
			}

			var st *store.Store
			if !ephemeral {
				if err := os.MkdirAll(filepath.Dir(opts.DBPath), 0o755); err != nil {
					return WrapExitError(ExitCommandError, "create database directory", err)
				}
				var err error
				if st, err = store.Open(opts.DBPath); err != nil {
					return WrapExitError(ExitCommandError, "open session database", err)
				}
				defer st.Close()
			}

			if resume != "" {
				if st == nil {
					return NewExitError(ExitCommandError, "--resume requires session storage")
				}
				return resumeSession(cmd, opts, st, km, resume)
			}

			diff, err := puzzle.ParseDifficulty(difficulty)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid difficulty", err)
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			var clues, solution board.Grid
			if packDir != "" {
				pack, err := puzzlepack.LoadDir(cmd.Context(), packDir)
				if err != nil {
					return WrapExitError(ExitCommandError, "load pack", err)
				}
				entry := &pack.Puzzles[0]
				if packLabel != "" {
					var ok bool
					if entry, ok = pack.Find(packLabel); !ok {
						return NewExitError(ExitCommandError,
							fmt.Sprintf("pack %q has no puzzle %q", pack.Name, packLabel))
					}
				}
				clues, solution, diff = entry.Clues, entry.Solution, entry.Difficulty
			} else {
				p, _, err := puzzle.Generate(cmd.Context(), seed, diff)
				if err != nil {
					return WrapExitError(ExitFailure, "generate puzzle", err)
				}
				clues, solution = p.Clues, p.Solution
			}

			b := board.New()
			if err := b.Load(clues, solution); err != nil {
				return WrapExitError(ExitFailure, "deal puzzle", err)
			}
			d := game.NewDispatcher(game.NewState(b))

			var sessionID string
			if st != nil {
				if sessionID, err = st.CreateSession(cmd.Context(), diff, clues, solution); err != nil {
					return WrapExitError(ExitCommandError, "create session", err)
				}
				d.SetJournal(st.Journal(cmd.Context(), sessionID))
			}

			return runTUI(tui.Options{
				Dispatcher: d,
				Keymap:     km,
				Difficulty: diff,
				Store:      st,
				SessionID:  sessionID,
				Seed:       seed,
			})
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "easy|medium|hard|expert")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generation seed (0 = time-based)")
	cmd.Flags().StringVar(&packDir, "pack", "", "deal from a puzzle pack directory")
	cmd.Flags().StringVar(&packLabel, "puzzle", "", "puzzle label within the pack")
	cmd.Flags().StringVar(&keymapPath, "keymap", "", "YAML keymap file")
	cmd.Flags().StringVar(&resume, "resume", "", "resume a saved session by ID")
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "play without saving a session")

	return cmd
}

func resumeSession(cmd *cobra.Command, opts *RootOptions, st *store.Store, km *keymap.Keymap, id string) error {
	sess, err := st.LoadSession(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return WrapExitError(ExitCommandError, "resume session", err)
		}
		return WrapExitError(ExitFailure, "resume session", err)
	}

	d := game.NewDispatcherAt(sess.State, sess.LastSeq)
	d.SetJournal(st.Journal(cmd.Context(), id))

	return runTUI(tui.Options{
		Dispatcher: d,
		Keymap:     km,
		Difficulty: sess.Difficulty,
		Store:      st,
		SessionID:  id,
		Seed:       time.Now().UnixNano(),
	})
}

// runTUI is swapped out in tests, where no terminal is available.
var runTUI = tui.Run
