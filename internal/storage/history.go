package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// DefaultMaxVisits caps the visit log per server.
const DefaultMaxVisits = 500

// Visit is one opened location.
type Visit struct {
	ID        int64
	Server    string
	Path      string
	Label     string
	VisitedAt time.Time
}

// VisitStore is the log of recently opened locations, newest first.
type VisitStore struct {
	db      *sql.DB
	maxSize int
	now     func() time.Time
}

// NewVisitStore creates a visit log using the given database. maxSize <= 0
// means DefaultMaxVisits.
func NewVisitStore(db *DB, maxSize int) *VisitStore {
	if maxSize <= 0 {
		maxSize = DefaultMaxVisits
	}
	return &VisitStore{db: db.Conn(), maxSize: maxSize, now: time.Now}
}

// Record logs a visit. Revisiting the most recent location only refreshes
// its timestamp.
func (vs *VisitStore) Record(server, path, label string) error {
	now := unixNano(vs.now())

	var lastID int64
	var lastPath string
	err := vs.db.QueryRow(
		`SELECT id, path FROM visits WHERE server = ? ORDER BY id DESC LIMIT 1`, server,
	).Scan(&lastID, &lastPath)
	switch {
	case err == nil && lastPath == path:
		_, err = vs.db.Exec(`UPDATE visits SET visited_at = ?, label = ? WHERE id = ?`, now, label, lastID)
		if err != nil {
			return fmt.Errorf("updating visit: %w", err)
		}
		return nil
	case err != nil && err != sql.ErrNoRows:
		return fmt.Errorf("reading last visit: %w", err)
	}

	if _, err := vs.db.Exec(
		`INSERT INTO visits (server, path, label, visited_at) VALUES (?, ?, ?, ?)`,
		server, path, label, now,
	); err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}

	_, err = vs.db.Exec(
		`DELETE FROM visits WHERE server = ? AND id NOT IN (
			SELECT id FROM visits WHERE server = ? ORDER BY id DESC LIMIT ?
		)`,
		server, server, vs.maxSize,
	)
	if err != nil {
		return fmt.Errorf("trimming visits: %w", err)
	}
	return nil
}

// Recent returns up to limit visits for server, newest first. limit <= 0
// returns them all.
func (vs *VisitStore) Recent(server string, limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = vs.maxSize
	}
	rows, err := vs.db.Query(
		`SELECT id, server, path, label, visited_at FROM visits
		 WHERE server = ?
		 ORDER BY id DESC LIMIT ?`,
		server, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var at int64
		if err := rows.Scan(&v.ID, &v.Server, &v.Path, &v.Label, &at); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		v.VisitedAt = fromUnixNano(at)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Clear removes every visit for server.
func (vs *VisitStore) Clear(server string) error {
	if _, err := vs.db.Exec(`DELETE FROM visits WHERE server = ?`, server); err != nil {
		return fmt.Errorf("clearing visits: %w", err)
	}
	return nil
}

// Remove deletes one visit by id.
func (vs *VisitStore) Remove(id int64) error {
	if _, err := vs.db.Exec(`DELETE FROM visits WHERE id = ?`, id); err != nil {
		return fmt.Errorf("removing visit: %w", err)
	}
	return nil
}
