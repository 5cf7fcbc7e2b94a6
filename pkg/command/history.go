package command

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ocasazza/atui/pkg/debug"
)

// History is the append-only execution log. Entries are always kept in
// memory for the session; when opened with a database path they are also
// persisted so past runs survive restarts. Navigation state is never
// persisted, only command results.
type History struct {
	entries []Result
	db      *sql.DB
}

// NewHistory returns an in-memory history.
func NewHistory() *History {
	return &History{}
}

// OpenHistory returns a history persisted to the SQLite database at path,
// creating the schema if needed.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS executions (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			at        TEXT NOT NULL,
			command   TEXT NOT NULL,
			exit_code INTEGER NOT NULL,
			stdout    TEXT NOT NULL,
			stderr    TEXT NOT NULL,
			success   INTEGER NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close releases the underlying database, if any.
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Append records a result. Persistence failures are logged and otherwise
// ignored; losing a history row must not fail the command that produced it.
func (h *History) Append(r Result) {
	h.entries = append(h.entries, r)
	if h.db == nil {
		return
	}
	_, err := h.db.Exec(
		`INSERT INTO executions (at, command, exit_code, stdout, stderr, success)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.At.Format(time.RFC3339), r.Command, r.ExitCode, r.Stdout, r.Stderr, boolToInt(r.Success),
	)
	if err != nil {
		debug.Log("persisting history entry: %v", err)
	}
}

// Entries returns the session's results in execution order.
func (h *History) Entries() []Result {
	return h.entries
}

// Last returns the most recent result of the session.
func (h *History) Last() (Result, bool) {
	if len(h.entries) == 0 {
		return Result{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Recent loads up to n persisted results, newest first. Returns only the
// in-memory entries when the history is not backed by a database.
func (h *History) Recent(n int) ([]Result, error) {
	if h.db == nil {
		entries := h.entries
		if len(entries) > n {
			entries = entries[len(entries)-n:]
		}
		out := make([]Result, len(entries))
		for i := range entries {
			out[len(entries)-1-i] = entries[i]
		}
		return out, nil
	}

	rows, err := h.db.Query(
		`SELECT at, command, exit_code, stdout, stderr, success
		 FROM executions ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var at string
		var success int
		if err := rows.Scan(&at, &r.Command, &r.ExitCode, &r.Stdout, &r.Stderr, &success); err != nil {
			return nil, err
		}
		r.At, _ = time.Parse(time.RFC3339, at)
		r.Success = success != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
