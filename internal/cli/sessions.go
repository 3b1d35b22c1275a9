package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pencilmark/pencilmark/internal/store"
)

// SessionInfo is the JSON payload for one session listing entry.
type SessionInfo struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	Difficulty string `json:"difficulty"`
	Events     int64  `json:"events"`
}

// NewSessionsCommand creates the sessions subcommand.
func NewSessionsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage saved game sessions",
	}
	cmd.AddCommand(newSessionsListCommand(opts))
	cmd.AddCommand(newSessionsDeleteCommand(opts))
	return cmd
}

func newSessionsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved sessions, newest first",
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

			sessions, err := st.ListSessions(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "list sessions", err)
			}

			if opts.Format == "json" {
				infos := make([]SessionInfo, 0, len(sessions))
				for _, s := range sessions {
					infos = append(infos, SessionInfo{
						ID:         s.ID,
						CreatedAt:  s.CreatedAt.Format(time.RFC3339),
						Difficulty: s.Difficulty.String(),
						Events:     s.LastSeq,
					})
				}
				return out.Success(infos)
			}

			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved sessions")
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-7s %d events\n",
					s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Difficulty, s.LastSeq)
			}
			return nil
		},
	}
}

func newSessionsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session and its journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(opts.DBPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open session database", err)
			}
			defer st.Close()

			if err := st.DeleteSession(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, store.ErrSessionNotFound) {
					return WrapExitError(ExitCommandError, "delete session", err)
				}
				return WrapExitError(ExitFailure, "delete session", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
