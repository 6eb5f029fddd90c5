package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"

	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

// sqliteStore keeps one row per task, keyed by position in the manager.
// A NULL priority means due now.
type sqliteStore struct {
	db *sql.DB
}

func openSQLite(path string) (*sqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Load(ctx context.Context) (*manager.Manager, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT context, description, days_to_start, days_to_end, days_to_finish, weight, priority
		FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var (
			r        task.Record
			weight   string
			priority sql.NullFloat64
		)
		if err := rows.Scan(&r.Context, &r.Description, &r.DaysToStart, &r.DaysToEnd,
			&r.DaysToFinish, &weight, &priority); err != nil {
			return nil, fmt.Errorf("%w: scan task: %w", ErrMalformed, err)
		}
		w, err := task.ParseWeight(weight)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, len(tasks), err)
		}
		r.Weight = w
		r.Priority = task.Score(math.Inf(1))
		if priority.Valid {
			r.Priority = task.Score(priority.Float64)
		}
		tasks = append(tasks, task.FromRecord(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return manager.Restore(tasks), nil
}

// Save replaces every row in a single transaction.
func (s *sqliteStore) Save(ctx context.Context, m *manager.Manager) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (position, context, description, days_to_start, days_to_end, days_to_finish, weight, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range m.Tasks() {
		if _, err = stmt.ExecContext(ctx, i, t.Context(), t.Description(),
			t.DaysToStart(), t.DaysToEnd(), t.DaysToFinish(),
			t.Weight().String(), nullPriority(t.Priority())); err != nil {
			return fmt.Errorf("insert task %d: %w", i, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// nullPriority stores non-finite priorities as NULL. SQLite REAL cannot
// hold infinity portably.
func nullPriority(p float64) sql.NullFloat64 {
	if math.IsInf(p, 0) || math.IsNaN(p) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: p, Valid: true}
}
