package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/game"
	"github.com/pencilmark/pencilmark/internal/puzzle"
)

// ErrSessionNotFound is returned when a session ID has no row.
var ErrSessionNotFound = errors.New("session not found")

// Session is a fully loaded game session: the interactive state plus
// the metadata needed to resume journaling where it left off.
type Session struct {
	ID         string
	CreatedAt  time.Time
	Difficulty puzzle.Difficulty
	State      *game.State
	LastSeq    int64
}

// Summary is the listing view of a session.
type Summary struct {
	ID         string
	CreatedAt  time.Time
	Difficulty puzzle.Difficulty
	LastSeq    int64
}

// CreateSession inserts a new session seeded from a puzzle and returns
// its ID. IDs are UUIDv7, so listing by ID also sorts by creation.
func (s *Store) CreateSession(ctx context.Context, diff puzzle.Difficulty, clues, solution board.Grid) (string, error) {
	b := board.New()
	if err := b.Load(clues, solution); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	id := uuid.Must(uuid.NewV7()).String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions
		(id, created_at, difficulty, clues, solution, state, mode, last_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`,
		id,
		time.Now().UTC().Format(time.RFC3339),
		diff.String(),
		puzzle.FormatGrid(clues),
		puzzle.FormatGrid(solution),
		encodeBoard(b),
		game.ModeFill.String(),
	)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// SaveSnapshot persists the session's current board state, input mode,
// and clock position. The journal stays append-only; the snapshot just
// saves replay work on the next load.
func (s *Store) SaveSnapshot(ctx context.Context, id string, st *game.State, lastSeq int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET state = ?, mode = ?, last_seq = ? WHERE id = ?
	`, encodeBoard(st.Board()), st.Mode().String(), lastSeq, id)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("save snapshot: %w", ErrSessionNotFound)
	}
	return nil
}

// LoadSession reads a session row and rebuilds its interactive state
// from the stored snapshot.
func (s *Store) LoadSession(ctx context.Context, id string) (*Session, error) {
	var (
		createdAt, diffStr, cluesStr, solutionStr, snapshot, modeStr string
		lastSeq                                                      int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT created_at, difficulty, clues, solution, state, mode, last_seq
		FROM sessions WHERE id = ?
	`, id).Scan(&createdAt, &diffStr, &cluesStr, &solutionStr, &snapshot, &modeStr, &lastSeq)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("load session %s: created_at: %w", id, err)
	}
	diff, err := puzzle.ParseDifficulty(diffStr)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	clues, err := puzzle.ParseGrid(cluesStr)
	if err != nil {
		return nil, fmt.Errorf("load session %s: clues: %w", id, err)
	}
	solution, err := puzzle.ParseGrid(solutionStr)
	if err != nil {
		return nil, fmt.Errorf("load session %s: solution: %w", id, err)
	}
	mode, err := game.ParseInputMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	b := board.New()
	if err := b.Load(clues, solution); err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if err := decodeBoard(b, snapshot); err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	st := game.NewState(b)
	st.SetMode(mode)

	return &Session{
		ID:         id,
		CreatedAt:  created,
		Difficulty: diff,
		State:      st,
		LastSeq:    lastSeq,
	}, nil
}

// ListSessions returns summaries of all sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, difficulty, last_seq
		FROM sessions ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum                Summary
			createdAt, diffStr string
		)
		if err := rows.Scan(&sum.ID, &createdAt, &diffStr, &sum.LastSeq); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("list sessions: created_at: %w", err)
		}
		if sum.Difficulty, err = puzzle.ParseDifficulty(diffStr); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

// DeleteSession removes a session and, via cascade, its journal.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete session %s: %w", id, ErrSessionNotFound)
	}
	return nil
}

// AppendEvent appends one journal entry for a session. The (session,
// seq) primary key makes duplicate appends fail loudly instead of
// corrupting replay order.
func (s *Store) AppendEvent(ctx context.Context, sessionID string, e game.JournalEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (session_id, seq, kind, digit, cell, multi, drag)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sessionID, e.Seq, e.Kind, e.Digit, e.Cell, e.Multi, e.Drag)
	if err != nil {
		return fmt.Errorf("append event seq %d: %w", e.Seq, err)
	}
	return nil
}

// ReadEvents returns a session's journal in seq order, optionally
// starting after a given seq (pass 0 for the full journal).
func (s *Store) ReadEvents(ctx context.Context, sessionID string, afterSeq int64) ([]game.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, digit, cell, multi, drag
		FROM events WHERE session_id = ? AND seq > ?
		ORDER BY seq ASC
	`, sessionID, afterSeq)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	var out []game.JournalEntry
	for rows.Next() {
		var e game.JournalEntry
		if err := rows.Scan(&e.Seq, &e.Kind, &e.Digit, &e.Cell, &e.Multi, &e.Drag); err != nil {
			return nil, fmt.Errorf("read events: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return out, nil
}

// SessionJournal adapts a session's event table to the dispatcher's
// journal interface.
type SessionJournal struct {
	store     *Store
	sessionID string
	ctx       context.Context
}

// Journal returns a journal sink bound to a session. The context is
// captured because the dispatcher's record path has no context of its
// own; pass the session's lifetime context.
func (s *Store) Journal(ctx context.Context, sessionID string) *SessionJournal {
	return &SessionJournal{store: s, sessionID: sessionID, ctx: ctx}
}

// Record implements the dispatcher journal.
func (j *SessionJournal) Record(e game.JournalEntry) error {
	return j.store.AppendEvent(j.ctx, j.sessionID, e)
}
