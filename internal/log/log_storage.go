// log_storage.go implements SQLite-based persistent audit logging.
//
// The main log.go provides the fluent API for building log entries, while
// this file handles persistence. The project column holds a hash of the
// store path so entries can be grouped per store without recording where
// the user keeps it.
//
// Errors during logging are reported on stderr and otherwise ignored: a tag
// mutation succeeds even if it cannot be recorded here.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	host    string
	project string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, project, host, source, action, path, tag, query,
		                 resolved_path, count, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.project, l.host, e.Source, e.Action,
		nilIfEmpty(e.Path), nilIfEmpty(e.Tag), nilIfEmpty(e.Query),
		nilIfEmpty(e.ResolvedPath), e.Count,
		success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "genie: audit log write failed: %v\n", err)
	}
}

// dbPathFunc is the function that returns the database path.
// Tests can override this to use a temp directory.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	if h := os.Getenv("GENIE_HOME"); h != "" {
		return filepath.Join(h, "log", "genie-log.db")
	}
	home, err := homedir.Dir()
	if err != nil {
		// Fall back to the current directory so logging still works in
		// environments without a home directory.
		return filepath.Join(".genie", "log", "genie-log.db")
	}
	return filepath.Join(home, ".genie", "log", "genie-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash creates a project identifier from the store path.
func hash(s string) string {
	h, err := blake2b.New(8, nil) // 64-bit = 16 hex chars
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist. Safe for concurrent access.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			start         INTEGER NOT NULL,
			end           INTEGER NOT NULL,
			project       TEXT NOT NULL,
			host          TEXT NOT NULL DEFAULT '',
			source        TEXT NOT NULL,
			action        TEXT NOT NULL,
			path          TEXT,
			tag           TEXT,
			query         TEXT,
			resolved_path TEXT,
			count         INTEGER NOT NULL DEFAULT 0,
			success       INTEGER NOT NULL,
			error         TEXT,
			detail        TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
		CREATE INDEX IF NOT EXISTS idx_log_project ON log(project);
		CREATE INDEX IF NOT EXISTS idx_log_source ON log(source);
	`)
	return err
}

// nilIfEmpty returns nil for empty strings, reducing NULL checks in queries.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
