// Package recorder keeps a sqlite-backed log of the requests the test
// server answered, so tests can assert exactly what the server observed.
package recorder

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Entry is one answered request as the server saw it.
type Entry struct {
	ID           int64
	Method       string
	Path         string
	RangeHeader  string
	Status       int
	BytesWritten int
	CreatedAt    time.Time
}

// Recorder appends entries to a sqlite database. The server writes to it
// from its single accept-loop goroutine; readers are the tests afterwards.
type Recorder struct {
	db *sql.DB
}

// Open creates or opens the request log at path.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "opening request log")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pinging request log")
	}
	if err := initDB(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing request log")
	}
	return &Recorder{db: db}, nil
}

func initDB(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS requests (
			id INTEGER PRIMARY KEY,
			method TEXT NOT NULL,
			path TEXT NOT NULL,
			range_header TEXT,
			status INTEGER,
			bytes_written INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// Record appends one entry. ID and CreatedAt are assigned by the database.
func (r *Recorder) Record(e Entry) error {
	_, err := r.db.Exec(
		"INSERT INTO requests (method, path, range_header, status, bytes_written) VALUES (?, ?, ?, ?, ?)",
		e.Method, e.Path, e.RangeHeader, e.Status, e.BytesWritten,
	)
	return errors.Wrap(err, "recording request")
}

// List returns every entry in insertion order.
func (r *Recorder) List() ([]Entry, error) {
	rows, err := r.db.Query(
		"SELECT id, method, path, range_header, status, bytes_written, created_at FROM requests ORDER BY id",
	)
	if err != nil {
		return nil, errors.Wrap(err, "listing requests")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Method, &e.Path, &e.RangeHeader, &e.Status, &e.BytesWritten, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning request row")
		}
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "iterating request rows")
}

func (r *Recorder) Close() error {
	return r.db.Close()
}
