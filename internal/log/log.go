// Package log provides centralised audit logging for genie operations.
// Logs are stored in ~/.genie/log/genie-log.db and record every CLI command
// and MCP tool invocation, across all stores on the machine.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("tag:tag", "tag").
//		Path(p).
//		Tag(t).
//		Write(err)
//
//	log.Event("search:search", "search").
//		Query(expr).
//		Count(len(paths)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "tag:rm",
// "search:search", "mcp:genie_tag".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "tag:tag", "mcp:genie_search"
	Action string // verb: tag, untag, list, search, config, etc.
	Path   string // input: file path as given
	Tag    string // input: tag name
	Query  string // input: search expression

	// Output fields - populated after the operation succeeds
	ResolvedPath string // output: canonical path (if different from input)
	Count        int    // output: number of results returned

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "tag:tag", "search:search")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:genie_tag")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the file path this operation targets, as the caller gave it.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Tag sets the tag this operation adds, removes or lists.
func (b *Builder) Tag(tag string) *Builder {
	b.entry.Tag = tag
	return b
}

// Query sets the search expression.
func (b *Builder) Query(q string) *Builder {
	b.entry.Query = q
	return b
}

// Resolved sets the canonical path (output). Only worth recording when it
// differs from the input, e.g. after "~" expansion.
func (b *Builder) Resolved(path string) *Builder {
	b.entry.ResolvedPath = path
	return b
}

// Count sets the number of results the operation returned.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields.
// Can be called multiple times to add multiple details.
//
//	log.Event("search:search", "search").
//		Detail("under", glob).
//		Detail("mode", "all")
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
//	paths, err := svc.Search(ctx, expr)
//	log.Event("search:search", "search").Query(expr).Count(len(paths)).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	host, _ := os.Hostname()
	global = &Logger{db: db, host: host}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The store should be the absolute path of the tag store in use.
func SetProject(store string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(store)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
