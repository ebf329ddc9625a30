// sqlite.go implements the SQLite backend.
//
// The table layout extends the one genie has always used: a single
// "genie" table with one row per (path, tag) pair, stamped with the host
// and creation time. Tables from earlier releases are upgraded on open. Save computes the difference between the stored rows
// and the desired set and applies it inside one transaction, so rows that
// survive keep their original time_created.
//
// This is the only file that imports the SQLite driver.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore persists pairs in a SQLite database.
type SQLiteStore struct {
	path string
	host string

	mu sync.Mutex
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("open", path, err)
	}

	// data_version is tracked per connection, so Stamp needs to keep asking
	// the same one.
	db.SetMaxOpenConns(1)

	pragmas := []struct{ stmt, what string }{
		// WAL lets CLI reads proceed while a server process writes.
		{`PRAGMA journal_mode=WAL`, "setting WAL mode"},
		{`PRAGMA busy_timeout=5000`, "setting busy timeout"},
		// FULL: a committed tag mutation must survive power loss.
		{`PRAGMA synchronous=FULL`, "setting synchronous mode"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, storageErr("open", path, fmt.Errorf("%s: %w", p.what, err))
		}
	}

	if err := upgradeLegacy(context.Background(), db); err != nil {
		db.Close()
		return nil, storageErr("open", path, fmt.Errorf("upgrade legacy table: %w", err))
	}
	if err := ExecEmbedded(context.Background(), db, schemas, "sql"); err != nil {
		db.Close()
		return nil, storageErr("open", path, err)
	}

	host, _ := os.Hostname()
	return &SQLiteStore{path: path, host: host, db: db}, nil
}

// upgradeLegacy brings a genie table created by earlier releases up to the
// current layout. Those tables have no host column, allow a NULL path and
// may hold duplicate pairs, any of which would break the unique index or
// the inserts Save makes. A database without a genie table is left alone.
func upgradeLegacy(ctx context.Context, db *sql.DB) error {
	cols, err := tableColumns(ctx, db, "genie")
	if err != nil || len(cols) == 0 || cols["host"] {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	stmts := []string{
		`ALTER TABLE genie ADD COLUMN host TEXT NOT NULL DEFAULT ''`,
		`DELETE FROM genie WHERE path IS NULL OR path = '' OR tag IS NULL OR tag = ''`,
		`DELETE FROM genie WHERE id NOT IN (SELECT MIN(id) FROM genie GROUP BY path, tag)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// tableColumns returns the column names of table, or none if it does not
// exist.
func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string { return s.path }

// DB exposes the underlying connection for diagnostics.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	return s.db, nil
}

// Load returns every row as a pair, ordered by path then tag.
func (s *SQLiteStore) Load(ctx context.Context) ([]Pair, error) {
	db, err := s.conn()
	if err != nil {
		return nil, storageErr("load", s.path, err)
	}

	rows, err := db.QueryContext(ctx, `SELECT path, tag FROM genie ORDER BY path, tag`)
	if err != nil {
		return nil, storageErr("load", s.path, err)
	}
	defer rows.Close()

	pairs := []Pair{}
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.Path, &p.Tag); err != nil {
			return nil, storageErr("load", s.path, err)
		}
		if p.Path == "" || p.Tag == "" {
			return nil, storageErr("load", s.path, fmt.Errorf("%w: row with empty path or tag", ErrCorrupt))
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("load", s.path, err)
	}
	return pairs, nil
}

// Save makes the table hold exactly pairs.
func (s *SQLiteStore) Save(ctx context.Context, pairs []Pair) error {
	db, err := s.conn()
	if err != nil {
		return storageErr("save", s.path, err)
	}

	want := make(map[Pair]bool, len(pairs))
	for _, p := range pairs {
		want[p] = true
	}

	err = s.tx(ctx, db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT id, path, tag FROM genie`)
		if err != nil {
			return err
		}
		var stale []int64
		have := make(map[Pair]bool)
		for rows.Next() {
			var id int64
			var p Pair
			if err := rows.Scan(&id, &p.Path, &p.Tag); err != nil {
				rows.Close()
				return err
			}
			if want[p] {
				have[p] = true
			} else {
				stale = append(stale, id)
			}
		}
		if err := rows.Close(); err != nil {
			return err
		}

		for _, id := range stale {
			if _, err := tx.ExecContext(ctx, `DELETE FROM genie WHERE id = ?`, id); err != nil {
				return fmt.Errorf("delete row %d: %w", id, err)
			}
		}

		now := time.Now().Unix()
		for p := range want {
			if have[p] {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO genie (host, path, tag, time_created) VALUES (?, ?, ?, ?)`,
				s.host, p.Path, p.Tag, now); err != nil {
				return fmt.Errorf("insert %s %s: %w", p.Path, p.Tag, err)
			}
		}
		return nil
	})
	return storageErr("save", s.path, err)
}

// tx executes fn within a transaction, rolling back if fn fails.
func (s *SQLiteStore) tx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Stamp returns SQLite's data_version, which changes when another
// connection commits.
func (s *SQLiteStore) Stamp(ctx context.Context) (string, error) {
	db, err := s.conn()
	if err != nil {
		return "", storageErr("stamp", s.path, err)
	}
	var v int64
	if err := db.QueryRowContext(ctx, `PRAGMA data_version`).Scan(&v); err != nil {
		return "", storageErr("stamp", s.path, err)
	}
	return strconv.FormatInt(v, 10), nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return storageErr("close", s.path, ErrClosed)
	}
	err := s.db.Close()
	s.db = nil
	return storageErr("close", s.path, err)
}
