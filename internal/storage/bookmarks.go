package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Bookmark is a saved location on a listing server.
type Bookmark struct {
	ID        int64
	Server    string
	Path      string
	Label     string
	CreatedAt time.Time
}

// IsRoot reports whether the bookmark points at the device root.
func (b Bookmark) IsRoot() bool { return b.Path == "" }

// BookmarkStore manages bookmarks persisted in SQLite.
type BookmarkStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewBookmarkStore creates a bookmark store using the given database.
func NewBookmarkStore(db *DB) *BookmarkStore {
	return &BookmarkStore{db: db.Conn(), now: time.Now}
}

// Add bookmarks path on server. It returns false if the location was
// already bookmarked.
func (bs *BookmarkStore) Add(server, path, label string) (bool, error) {
	res, err := bs.db.Exec(
		`INSERT OR IGNORE INTO bookmarks (server, path, label, created_at) VALUES (?, ?, ?, ?)`,
		server, path, label, unixNano(bs.now()),
	)
	if err != nil {
		return false, fmt.Errorf("adding bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Remove deletes a bookmark. It returns false if none matched.
func (bs *BookmarkStore) Remove(server, path string) (bool, error) {
	res, err := bs.db.Exec(`DELETE FROM bookmarks WHERE server = ? AND path = ?`, server, path)
	if err != nil {
		return false, fmt.Errorf("removing bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Toggle adds the bookmark if absent and removes it otherwise. It reports
// whether the location is bookmarked afterwards.
func (bs *BookmarkStore) Toggle(server, path, label string) (bool, error) {
	removed, err := bs.Remove(server, path)
	if err != nil || removed {
		return false, err
	}
	return bs.Add(server, path, label)
}

// Has reports whether a location is bookmarked.
func (bs *BookmarkStore) Has(server, path string) bool {
	var count int
	err := bs.db.QueryRow(
		`SELECT COUNT(*) FROM bookmarks WHERE server = ? AND path = ?`, server, path,
	).Scan(&count)
	return err == nil && count > 0
}

// List returns the bookmarks for server, newest first.
func (bs *BookmarkStore) List(server string) ([]Bookmark, error) {
	rows, err := bs.db.Query(
		`SELECT id, server, path, label, created_at FROM bookmarks
		 WHERE server = ?
		 ORDER BY created_at DESC, id DESC`,
		server,
	)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		var created int64
		if err := rows.Scan(&b.ID, &b.Server, &b.Path, &b.Label, &created); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		b.CreatedAt = fromUnixNano(created)
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// Count returns the number of bookmarks across all servers.
func (bs *BookmarkStore) Count() int {
	var count int
	_ = bs.db.QueryRow(`SELECT COUNT(*) FROM bookmarks`).Scan(&count)
	return count
}
