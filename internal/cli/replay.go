package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pencilmark/pencilmark/internal/store"
)

// ReplayResult is the JSON payload for a replayed session.
type ReplayResult struct {
	SessionID string `json:"session_id"`
	Events    int    `json:"events"`
	Mode      string `json:"mode"`
	Solved    bool   `json:"solved"`
	Board     string `json:"board"`
	Verified  *bool  `json:"verified,omitempty"`
}

// NewReplayCommand creates the replay subcommand.
func NewReplayCommand(opts *RootOptions) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "replay <session-id>",
		Short: "Rebuild a session from its input journal",
		Long: `Replay reconstructs a session's board purely from its journal:
a fresh board is dealt from the stored puzzle and every recorded input
event is re-applied in logical-clock order. With --verify, the result
is also checked against the stored snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			st, err := store.Open(opts.DBPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open session database", err)
			}
			defer st.Close()

			id := args[0]
			replayed, err := st.Replay(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, store.ErrSessionNotFound) {
					return WrapExitError(ExitCommandError, "replay session", err)
				}
				return WrapExitError(ExitFailure, "replay session", err)
			}

			events, err := st.ReadEvents(cmd.Context(), id, 0)
			if err != nil {
				return WrapExitError(ExitFailure, "read journal", err)
			}

			res := ReplayResult{
				SessionID: id,
				Events:    len(events),
				Mode:      replayed.Mode().String(),
				Solved:    replayed.Board().Solved(),
				Board:     replayed.Board().String(),
			}

			if verify {
				verified := true
				if err := st.VerifyReplay(cmd.Context(), id); err != nil {
					verified = false
					res.Verified = &verified
					if opts.Format == "json" {
						out.Success(res)
					}
					return WrapExitError(ExitFailure, "replay diverges from snapshot", err)
				}
				res.Verified = &verified
			}

			if opts.Format == "json" {
				return out.Success(res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d events, mode %s\n", id, res.Events, res.Mode)
			fmt.Fprintln(cmd.OutOrStdout(), res.Board)
			if res.Verified != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "replay matches snapshot")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check the replay against the stored snapshot")

	return cmd
}
