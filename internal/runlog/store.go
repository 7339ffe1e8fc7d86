// Package runlog persists the record of every submission attempt: a SQLite
// store for querying history and a CSV append log for operators.
package runlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/formrunner/formrunner/internal/domain"
)

// Store provides SQLite-backed run persistence
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult inserts a run result. Results are write-once; there is no
// update path.
func (s *Store) SaveResult(r *domain.RunResult) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, timestamp, url, status, error, screenshot, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.Timestamp,
		r.URL,
		string(r.Status),
		r.Error,
		r.Screenshot,
		r.Duration.Milliseconds(),
	)
	return err
}

// GetResult retrieves a run result by ID
func (s *Store) GetResult(id string) (*domain.RunResult, error) {
	row := s.db.QueryRow(`
		SELECT id, timestamp, url, status, error, screenshot, duration_ms
		FROM runs WHERE id = ?
	`, id)
	return scanResult(row.Scan)
}

// ListOptions specifies filters for listing run results
type ListOptions struct {
	Status domain.RunStatus
	URL    string
	Limit  int
}

// ListResults returns run results matching the given options, most
// recent first
func (s *Store) ListResults(opts ListOptions) ([]*domain.RunResult, error) {
	query := `SELECT id, timestamp, url, status, error, screenshot, duration_ms FROM runs WHERE 1=1`
	var args []interface{}

	if opts.Status != "" {
		query += " AND status = ?"
		args = append(args, string(opts.Status))
	}
	if opts.URL != "" {
		query += " AND url = ?"
		args = append(args, opts.URL)
	}

	query += " ORDER BY timestamp DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.RunResult
	for rows.Next() {
		r, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// CountByStatus returns run counts keyed by status
func (s *Store) CountByStatus() (map[domain.RunStatus]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM runs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RunStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.RunStatus(status)] = n
	}
	return counts, rows.Err()
}

func scanResult(scan func(dest ...interface{}) error) (*domain.RunResult, error) {
	var r domain.RunResult
	var status string
	var errDetail, screenshot sql.NullString
	var durationMS int64

	if err := scan(&r.ID, &r.Timestamp, &r.URL, &status, &errDetail, &screenshot, &durationMS); err != nil {
		return nil, err
	}

	r.Status = domain.RunStatus(status)
	if errDetail.Valid {
		r.Error = errDetail.String
	}
	if screenshot.Valid {
		r.Screenshot = screenshot.String
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond

	return &r, nil
}
