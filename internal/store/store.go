// Package store persists exported project documents in SQLite. The
// document column holds the same versioned JSON the codec package
// writes to disk, so a database row and an exported file are
// interchangeable.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/smartmall/builder/pkg/codec"
	"github.com/smartmall/builder/pkg/model"
)

// ErrNotFound is returned when no project has the requested ID.
var ErrNotFound = errors.New("project not found")

const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    revision   INTEGER NOT NULL,
    updated_at TEXT NOT NULL,
    document   TEXT NOT NULL
);
`

// ProjectInfo is the listing row for a stored project.
type ProjectInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Revision  int    `json:"revision"`
	UpdatedAt string `json:"updatedAt"`
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at dbPath and
// ensures the schema exists.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save upserts the project under its own ID.
func (s *Store) Save(ctx context.Context, p *model.MallProject) error {
	doc, err := codec.Export(p)
	if err != nil {
		return fmt.Errorf("exporting project: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO projects (id, name, revision, updated_at, document)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            revision = excluded.revision,
            updated_at = excluded.updated_at,
            document = excluded.document
    `, p.ID, p.Name, p.Revision, p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"), string(doc))
	if err != nil {
		return fmt.Errorf("saving project %s: %w", p.ID, err)
	}
	return nil
}

// Get loads and decodes a stored project.
func (s *Store) Get(ctx context.Context, id string) (*model.MallProject, error) {
	row := s.db.QueryRowContext(ctx, `SELECT document FROM projects WHERE id = ?`, id)

	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return codec.Import([]byte(doc))
}

// List returns summary rows for all stored projects, most recently
// updated first.
func (s *Store) List(ctx context.Context) ([]ProjectInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, revision, updated_at
        FROM projects
        ORDER BY updated_at DESC, id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ProjectInfo{}
	for rows.Next() {
		var info ProjectInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Revision, &info.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a stored project.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
