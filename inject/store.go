package inject

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS scoped_rules (
	class   TEXT PRIMARY KEY,
	css     TEXT NOT NULL,
	updated INTEGER NOT NULL
);`

// Store persists scoped rules in SQLite so server side renderers can serve a
// stylesheet assembled by many processes.
type Store struct {
	log *zap.Logger

	mu   sync.Mutex
	conn *sqlite.Conn
}

// OpenStore opens (creating if necessary) database at path.
func OpenStore(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite|sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("unable to open style store %s: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, storeSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare style store schema: %w", err)
	}
	return &Store{log: log.Named("store"), conn: conn}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// exec runs single statement with ctx able to interrupt it.
func (s *Store) exec(ctx context.Context, query string, opts *sqlitex.ExecOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)
	return sqlitex.Execute(s.conn, query, opts)
}

// InjectScoped implements registry.Injector.
func (s *Store) InjectScoped(ctx context.Context, css, className string) error {
	err := s.exec(ctx, `
INSERT INTO scoped_rules (class, css, updated) VALUES (?, ?, ?)
ON CONFLICT (class) DO UPDATE SET css = excluded.css, updated = excluded.updated;`,
		&sqlitex.ExecOptions{Args: []any{className, css, time.Now().Unix()}})
	if err != nil {
		return fmt.Errorf("unable to store rules for %s: %w", className, err)
	}
	return nil
}

// ClearRule implements registry.Injector.
func (s *Store) ClearRule(ctx context.Context, className string) error {
	if err := s.exec(ctx, `DELETE FROM scoped_rules WHERE class = ?;`,
		&sqlitex.ExecOptions{Args: []any{className}}); err != nil {
		return fmt.Errorf("unable to delete rules for %s: %w", className, err)
	}
	return nil
}

// ClearAll implements registry.Injector.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.exec(ctx, `DELETE FROM scoped_rules;`, nil); err != nil {
		return fmt.Errorf("unable to delete rules: %w", err)
	}
	s.log.Debug("Style store wiped")
	return nil
}

// CSS returns stored rules for className.
func (s *Store) CSS(ctx context.Context, className string) (css string, found bool, err error) {
	err = s.exec(ctx, `SELECT css FROM scoped_rules WHERE class = ?;`, &sqlitex.ExecOptions{
		Args: []any{className},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			css, found = stmt.ColumnText(0), true
			return nil
		},
	})
	return
}

// Stylesheet returns all stored rules ordered by class, one class per line.
func (s *Store) Stylesheet(ctx context.Context) (string, error) {
	var sb strings.Builder
	err := s.exec(ctx, `SELECT css FROM scoped_rules ORDER BY class;`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			sb.WriteString(stmt.ColumnText(0))
			sb.WriteByte('\n')
			return nil
		},
	})
	if err != nil {
		return "", fmt.Errorf("unable to read stylesheet: %w", err)
	}
	return sb.String(), nil
}
