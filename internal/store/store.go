// Package store owns the canonical task collection. The MySQL-backed Store
// is the durable implementation; Memory is the in-process variant used in
// tests and dry-run mode.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"tarefas/internal/task"
)

var (
	// ErrNotFound reports that no live task matches the locator.
	ErrNotFound = errors.New("tarefa não encontrada")
	// ErrDuplicate reports a name collision on create or rename.
	ErrDuplicate = errors.New("tarefa já cadastrada")
)

// Store is the MySQL-backed task collection. Name uniqueness is enforced
// by the uniq_name index, so racing creates resolve to exactly one winner.
type Store struct {
	db *sql.DB
}

// Open connects to the backing database and ensures the schema exists.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS tarefas (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(200) NOT NULL,
    description TEXT,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE KEY uniq_name (name)
)`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Create persists a new task, assigning a fresh id. Returns ErrDuplicate
// when a live task already holds the name.
func (s *Store) Create(ctx context.Context, name, description string, completed bool) (task.Task, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tarefas (name, description, completed) VALUES (?, ?, ?)`,
		name, description, completed)
	if err != nil {
		if isDuplicateEntry(err) {
			return task.Task{}, ErrDuplicate
		}
		return task.Task{}, fmt.Errorf("create tarefa: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return task.Task{}, fmt.Errorf("create tarefa: %w", err)
	}
	return task.Task{ID: id, Name: name, Description: description, Completed: completed}, nil
}

// FindByName returns the task holding name, or ErrNotFound.
func (s *Store) FindByName(ctx context.Context, name string) (task.Task, error) {
	var t task.Task
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, completed FROM tarefas WHERE name = ?`, name).
		Scan(&t.ID, &t.Name, &t.Description, &t.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, ErrNotFound
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("find tarefa: %w", err)
	}
	return t, nil
}

// Update fetches the task addressed by locator, applies the patch and
// writes the result back in one statement keyed by the immutable id.
// A rename onto an existing name trips uniq_name and returns ErrDuplicate.
func (s *Store) Update(ctx context.Context, locator string, p task.Patch) (task.Task, error) {
	cur, err := s.FindByName(ctx, locator)
	if err != nil {
		return task.Task{}, err
	}
	next := p.Apply(cur)
	_, err = s.db.ExecContext(ctx,
		`UPDATE tarefas SET name = ?, description = ?, completed = ? WHERE id = ?`,
		next.Name, next.Description, next.Completed, next.ID)
	if err != nil {
		if isDuplicateEntry(err) {
			return task.Task{}, ErrDuplicate
		}
		return task.Task{}, fmt.Errorf("update tarefa: %w", err)
	}
	return next, nil
}

// Delete removes the task addressed by locator, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, locator string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tarefas WHERE name = ?`, locator)
	if err != nil {
		return fmt.Errorf("delete tarefa: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tarefa: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// All returns every live task in insertion order. Ordering for display is
// the listing engine's job; insertion order only anchors tie-breaking.
func (s *Store) All(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, completed FROM tarefas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tarefas: %w", err)
	}
	defer rows.Close()

	var out []task.Task
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Completed); err != nil {
			return nil, fmt.Errorf("list tarefas: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tarefas: %w", err)
	}
	return out, nil
}

// Count returns the number of live tasks, independent of any window.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tarefas`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tarefas: %w", err)
	}
	return n, nil
}

// isDuplicateEntry reports MySQL error 1062 (duplicate entry for a key).
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
