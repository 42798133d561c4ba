// Package sink persists classified records to a SQLite database: the
// single table with a uniqueness constraint on (name, filename, line,
// column, handling_type) that the specification's emission record maps
// onto. Grounded on the same sqlite/sqlitex idiom as the pack's other
// single-writer SQLite sink (OpenConn + a prepared INSERT statement).
// Each record is inserted by its own step; writes are not grouped into
// an enclosing transaction.
package sink

import (
	"fmt"
	"os"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/errorck/errorck/internal/classify"
)

const schema = `
CREATE TABLE IF NOT EXISTS watched_calls (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	filename TEXT NOT NULL,
	line INTEGER NOT NULL,
	column INTEGER NOT NULL,
	handling_type TEXT NOT NULL,
	assigned_filename TEXT,
	assigned_line INTEGER,
	assigned_column INTEGER,
	UNIQUE (name, filename, line, column, handling_type)
);
`

// Writer owns the sink's single database connection. One Writer is opened
// per run and written to only by the driver goroutine that collects the
// translation-unit workers' records; Writer has no locking of its own and
// is not safe for concurrent use, matching the engine's "single writer"
// invariant.
type Writer struct {
	conn   *sqlite.Conn
	insert *sqlite.Stmt
	sticky error
}

// Open opens (creating if absent) the sink database at path. If overwrite
// is true and a file already exists at path, it is removed first so the
// run starts from a clean, byte-identical-on-rerun sink; if overwrite is
// false and the file exists, Open refuses and returns an error, matching
// the sink's exclusive-ownership invariant.
func Open(path string, overwrite bool) (*Writer, error) {
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return nil, fmt.Errorf("sink %s already exists (pass --overwrite-if-needed to replace it)", path)
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove existing sink %s: %w", path, err)
		}
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate, sqlite.OpenReadWrite)
	if err != nil {
		return nil, fmt.Errorf("open sink %s: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create schema in %s: %w", path, err)
	}
	stmt, err := conn.Prepare(`
		INSERT OR IGNORE INTO watched_calls
			(name, filename, line, column, handling_type, assigned_filename, assigned_line, assigned_column)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	return &Writer{conn: conn, insert: stmt}, nil
}

// Write persists one classified record. After the first write failure the
// error latches as sticky: subsequent calls are no-ops that keep returning
// it, per the sink error domain's latched-error design.
func (w *Writer) Write(r classify.Record) error {
	if w.sticky != nil {
		return w.sticky
	}
	w.insert.BindText(1, r.Name)
	w.insert.BindText(2, r.Filename)
	w.insert.BindInt64(3, int64(r.Line))
	w.insert.BindInt64(4, int64(r.Column))
	w.insert.BindText(5, r.Category.String())
	if r.Assignment != nil {
		w.insert.BindText(6, r.Assignment.Filename)
		w.insert.BindInt64(7, int64(r.Assignment.Line))
		w.insert.BindInt64(8, int64(r.Assignment.Column))
	} else {
		w.insert.BindNull(6)
		w.insert.BindNull(7)
		w.insert.BindNull(8)
	}

	_, err := w.insert.Step()
	resetErr := w.insert.Reset()
	if err != nil {
		w.sticky = fmt.Errorf("insert watched call %s: %w", r.Name, err)
		return w.sticky
	}
	if resetErr != nil {
		w.sticky = fmt.Errorf("reset insert statement after %s: %w", r.Name, resetErr)
		return w.sticky
	}
	return nil
}

// WriteAll writes every record in records, stopping at the first error
// (which will have already latched as sticky).
func (w *Writer) WriteAll(records []classify.Record) error {
	for _, r := range records {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Err returns the sink's sticky error, if any write has failed so far.
func (w *Writer) Err() error {
	return w.sticky
}

// Close releases the sink's prepared statement and connection.
func (w *Writer) Close() error {
	_ = w.insert.Finalize()
	return w.conn.Close()
}
