// Package capture records Set-Cookie headers seen in the wild, together with
// the exchange they came from, so that they can be parsed again later.
package capture

import (
	"database/sql"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// Entry is one captured header.
type Entry struct {
	ID         int64
	Header     string
	Host       string
	Port       int
	Path       string
	Secure     bool
	CapturedAt time.Time
}

// Store keeps entries in SQLite. It is safe for concurrent use.
type Store struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

// Open opens (and if needed creates) the store with the given filename as the db.
// If file name is empty, a new in-memory db is opened.
func Open(filename string) (*Store, error) {
	if filename == "" {
		filename = "file::memory:?cache=shared"
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS capture (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		header TEXT NOT NULL,
		host TEXT,
		port INTEGER,
		path TEXT,
		secure INTEGER,
		captured_at INTEGER
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	_, err = db.Exec("CREATE INDEX IF NOT EXISTS captured_at_idx ON capture (captured_at)")
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{
		db:         db,
		writeMutex: &sync.Mutex{},
	}, nil
}

// Put stores the entry and returns its id. A zero CapturedAt is set to now.
func (s *Store) Put(e Entry) (int64, error) {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	if e.CapturedAt.IsZero() {
		e.CapturedAt = time.Now()
	}
	res, err := s.db.Exec(`INSERT INTO capture
		(header, host, port, path, secure, captured_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Header, e.Host, e.Port, e.Path, e.Secure, e.CapturedAt.Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Get returns the entry with the given id, along with a boolean indicating
// whether it exists.
func (s *Store) Get(id int64) (Entry, bool, error) {
	row := s.db.QueryRow(`SELECT
		id, header, host, port, path, secure, captured_at
		FROM capture WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return e, false, nil
	}
	if err != nil {
		return e, false, err
	}
	return e, true, nil
}

// Each calls cb for every entry in capture order, stopping at the first error.
// Entries are streamed so that very large captures can be processed.
func (s *Store) Each(cb func(Entry) error) error {
	rows, err := s.db.Query(`SELECT
		id, header, host, port, path, secure, captured_at
		FROM capture ORDER BY id ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return err
		}
		if err := cb(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Count returns the number of entries.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM capture").Scan(&n)
	return n, err
}

// Purge removes the entry with the given id.
func (s *Store) Purge(id int64) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec("DELETE FROM capture WHERE id = ?", id)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var capturedAt int64
	err := row.Scan(&e.ID, &e.Header, &e.Host, &e.Port, &e.Path, &e.Secure, &capturedAt)
	if err != nil {
		return e, err
	}
	e.CapturedAt = time.Unix(capturedAt, 0)
	return e, nil
}
