package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/gripe/internal/grievance"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore persists grievances in a SQLite database. It implements
// the same observable semantics as FileStore, including application-side
// id assignment.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithSQLiteClock overrides the wall clock used for created_at timestamps.
func WithSQLiteClock(now func() time.Time) SQLiteOption {
	return func(s *SQLiteStore) { s.now = now }
}

// OpenSQLite creates or opens a SQLite database at the given path and
// applies pragmas and the schema. Idempotent: safe to call on an
// existing database.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
func OpenSQLite(path string, opts ...SQLiteOption) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY errors entirely.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add implements Store. The id is computed inside the insert
// transaction, so sequential adds through one process never collide.
func (s *SQLiteStore) Add(ctx context.Context, title, description, author string) (grievance.Grievance, error) {
	title, description, author, err := normalizeFields(title, description, author)
	if err != nil {
		return grievance.Grievance{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return grievance.Grievance{}, fmt.Errorf("add grievance: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var id int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) + 1 FROM grievances`,
	).Scan(&id); err != nil {
		return grievance.Grievance{}, fmt.Errorf("add grievance: next id: %w", err)
	}

	g := grievance.New(id, title, description, author, s.now())
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO grievances
		(id, title, description, author, status, upvotes, downvotes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		g.ID, g.Title, g.Description, g.Author,
		string(g.Status), g.Upvotes, g.Downvotes, g.CreatedAt.String(),
	); err != nil {
		return grievance.Grievance{}, fmt.Errorf("add grievance: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return grievance.Grievance{}, fmt.Errorf("add grievance: commit: %w", err)
	}
	return g, nil
}

// List implements Store. Ties under either sort key order by id so
// results are deterministic across runs.
func (s *SQLiteStore) List(ctx context.Context, status grievance.Status, key grievance.SortKey) ([]grievance.Grievance, error) {
	query := `
		SELECT id, title, description, author, status, upvotes, downvotes, created_at
		FROM grievances`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	if key == grievance.SortByVotes {
		query += ` ORDER BY (upvotes - downvotes) DESC, id ASC`
	} else {
		query += ` ORDER BY created_at ASC, id ASC`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list grievances: %w", err)
	}
	defer rows.Close()

	items := []grievance.Grievance{}
	for rows.Next() {
		g, err := scanGrievance(rows)
		if err != nil {
			return nil, fmt.Errorf("list grievances: %w", err)
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list grievances: %w", err)
	}
	return items, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id int) (grievance.Grievance, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, author, status, upvotes, downvotes, created_at
		FROM grievances WHERE id = ?
	`, id)
	g, err := scanGrievance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return grievance.Grievance{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return grievance.Grievance{}, fmt.Errorf("get grievance: %w", err)
	}
	return g, nil
}

// Vote implements Store. Not-found is detected via RowsAffected, so no
// counter moves for an absent id.
func (s *SQLiteStore) Vote(ctx context.Context, id int, dir grievance.VoteDirection) (grievance.Grievance, error) {
	column := "upvotes"
	if dir == grievance.VoteDown {
		column = "downvotes"
	}
	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE grievances SET %s = %s + 1 WHERE id = ?`, column, column), id)
	if err != nil {
		return grievance.Grievance{}, fmt.Errorf("vote: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return grievance.Grievance{}, fmt.Errorf("vote: rows affected: %w", err)
	}
	if affected == 0 {
		return grievance.Grievance{}, &NotFoundError{ID: id}
	}
	return s.Get(ctx, id)
}

// Resolve implements Store. The update is unconditional, so resolving
// an already-resolved grievance succeeds without change.
func (s *SQLiteStore) Resolve(ctx context.Context, id int) (grievance.Grievance, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE grievances SET status = ? WHERE id = ?`, string(grievance.StatusResolved), id)
	if err != nil {
		return grievance.Grievance{}, fmt.Errorf("resolve: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return grievance.Grievance{}, fmt.Errorf("resolve: rows affected: %w", err)
	}
	if affected == 0 {
		return grievance.Grievance{}, &NotFoundError{ID: id}
	}
	return s.Get(ctx, id)
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM grievances WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete: rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGrievance(row scanner) (grievance.Grievance, error) {
	var g grievance.Grievance
	var status, createdAt string
	if err := row.Scan(
		&g.ID, &g.Title, &g.Description, &g.Author,
		&status, &g.Upvotes, &g.Downvotes, &createdAt,
	); err != nil {
		return grievance.Grievance{}, err
	}
	g.Status = grievance.Status(status)
	parsed, err := time.ParseInLocation(grievance.TimeLayout, createdAt, time.Local)
	if err != nil {
		return grievance.Grievance{}, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	g.CreatedAt = grievance.NewTimestamp(parsed)
	return g, nil
}
