package task

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kbukum/taskstats/errors"
)

// SQLiteStore keeps tasks in a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at path and brings its
// schema up to date.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Ping checks the connection.
func (s *SQLiteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// SchemaVersion returns the highest applied migration.
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (int, error) {
	return schemaVersion(ctx, s.db)
}

// FetchAll returns every task ordered by creation time.
func (s *SQLiteStore) FetchAll(ctx context.Context) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, completed, created_at FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.DatabaseError(fmt.Errorf("list tasks: %w", err))
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, errors.DatabaseError(err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError(fmt.Errorf("list tasks: %w", err))
	}
	return out, nil
}

// Save inserts or replaces a task.
func (s *SQLiteStore) Save(ctx context.Context, t Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO tasks(id, title, description, completed, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title=excluded.title,
	description=excluded.description,
	completed=excluded.completed
`, t.ID, t.Title, t.Description, boolToInt(t.Completed), ts(t.CreatedAt))
	if err != nil {
		return errors.DatabaseError(fmt.Errorf("save task: %w", err))
	}
	return nil
}

// Get returns the task with id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, description, completed, created_at FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return Task{}, errors.NotFound("task", id)
	}
	if err != nil {
		return Task{}, errors.DatabaseError(err)
	}
	return t, nil
}

// Complete marks a task completed.
func (s *SQLiteStore) Complete(ctx context.Context, id string) error {
	return s.setCompleted(ctx, id, true)
}

// Activate marks a task active again.
func (s *SQLiteStore) Activate(ctx context.Context, id string) error {
	return s.setCompleted(ctx, id, false)
}

func (s *SQLiteStore) setCompleted(ctx context.Context, id string, done bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, boolToInt(done), id)
	if err != nil {
		return errors.DatabaseError(fmt.Errorf("update task: %w", err))
	}
	return requireRow(res, id)
}

// Delete removes a task.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError(fmt.Errorf("delete task: %w", err))
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.DatabaseError(err)
	}
	if n == 0 {
		return errors.NotFound("task", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(sc scanner) (Task, error) {
	var (
		t         Task
		completed int
		createdAt string
	)
	if err := sc.Scan(&t.ID, &t.Title, &t.Description, &completed, &createdAt); err != nil {
		return Task{}, err
	}
	created, err := parseTS(createdAt)
	if err != nil {
		return Task{}, fmt.Errorf("parse created_at for %s: %w", t.ID, err)
	}
	t.Completed = completed == 1
	t.CreatedAt = created
	return t, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// tsLayout is fixed-width so created_at sorts lexically.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

func ts(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func parseTS(s string) (time.Time, error) {
	return time.ParseInLocation(tsLayout, s, time.UTC)
}
