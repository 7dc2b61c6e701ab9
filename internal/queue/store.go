package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages queue persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// ErrNotFound is returned when a queue item does not exist.
var ErrNotFound = errors.New("queue item not found")

// Open initializes or connects to the queue database at dbPath and verifies
// the schema.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure queue directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// NewItem inserts a pending item for a media file. Enqueueing the same
// source path twice returns the existing item, so repeated library scans
// are idempotent.
func (s *Store) NewItem(ctx context.Context, sourcePath, title string) (*Item, error) {
	if existing, err := s.GetBySource(ctx, sourcePath); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO queue_items (source_path, title, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)`,
		sourcePath,
		title,
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches one item.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	return scanItem(row)
}

// GetBySource fetches the item for a media file path.
func (s *Store) GetBySource(ctx context.Context, sourcePath string) (*Item, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE source_path = ?", sourcePath)
	return scanItem(row)
}

// List returns all items ordered by creation.
func (s *Store) List(ctx context.Context) ([]*Item, error) {
	return s.query(ctx, selectColumns+" ORDER BY id")
}

// ListByStatus returns items in any of the given statuses, ordered by
// creation.
func (s *Store) ListByStatus(ctx context.Context, statuses ...Status) ([]*Item, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	query := selectColumns + " WHERE status IN ("
	args := make([]any, 0, len(statuses))
	for i, status := range statuses {
		if i > 0 {
			query += ", "
		}
		query += "?"
		args = append(args, string(status))
	}
	query += ") ORDER BY id"
	return s.query(ctx, query, args...)
}

// Update persists the item's mutable fields.
func (s *Store) Update(ctx context.Context, item *Item) error {
	if item == nil {
		return errors.New("item is required")
	}
	if !item.Status.Valid() {
		return fmt.Errorf("invalid status %q", item.Status)
	}
	item.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE queue_items
         SET status = ?, error_message = ?, progress_stage = ?, progress_message = ?, updated_at = ?
         WHERE id = ?`,
		string(item.Status),
		item.ErrorMessage,
		item.ProgressStage,
		item.ProgressMessage,
		item.UpdatedAt.Format(time.RFC3339Nano),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetStuck rolls items stuck in a processing status back to the preceding
// done status. Called at startup; an interrupted run must not strand items.
func (s *Store) ResetStuck(ctx context.Context) (int64, error) {
	var total int64
	for processing, resumed := range processingStatuses {
		res, err := s.db.ExecContext(
			ctx,
			`UPDATE queue_items SET status = ?, updated_at = ? WHERE status = ?`,
			string(resumed),
			time.Now().UTC().Format(time.RFC3339Nano),
			string(processing),
		)
		if err != nil {
			return total, fmt.Errorf("reset %s items: %w", processing, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("rows affected: %w", err)
		}
		total += affected
	}
	return total, nil
}

// Retry moves a failed item back to pending so the next run picks it up.
func (s *Store) Retry(ctx context.Context, id int64) error {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.Status != StatusFailed {
		return fmt.Errorf("item %d is %s, only failed items can be retried", id, item.Status)
	}
	item.Status = StatusPending
	item.ErrorMessage = ""
	item.ProgressStage = ""
	item.ProgressMessage = ""
	return s.Update(ctx, item)
}

// Clear removes completed items; with all set, it removes everything.
func (s *Store) Clear(ctx context.Context, all bool) (int64, error) {
	query := "DELETE FROM queue_items WHERE status = ?"
	args := []any{string(StatusCompleted)}
	if all {
		query = "DELETE FROM queue_items"
		args = nil
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

const selectColumns = `SELECT id, source_path, title, status, error_message,
    progress_stage, progress_message, created_at, updated_at FROM queue_items`

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanItem(row scannable) (*Item, error) {
	var item Item
	var status, createdAt, updatedAt string
	err := row.Scan(
		&item.ID,
		&item.SourcePath,
		&item.Title,
		&status,
		&item.ErrorMessage,
		&item.ProgressStage,
		&item.ProgressMessage,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}
	item.Status = Status(status)
	if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		item.CreatedAt = t
	}
	if t, parseErr := time.Parse(time.RFC3339Nano, updatedAt); parseErr == nil {
		item.UpdatedAt = t
	}
	return &item, nil
}
