// Package store provides SQLite-backed persistence for game sessions.
//
// Each session row pairs the dealt puzzle with a snapshot of the
// current board state; the events table is the session's append-only
// input journal. All ordering uses seq (the session's logical clock),
// never timestamps, so a journal replays to an identical board no
// matter when or where it runs.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: events cascade with their session
package store
