// Package persistence stores tasks in the SQL database.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/convert"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/database"
	"github.com/imsachin001/chronosync/internal/tasks/domain/task"
)

const taskColumns = `id, user_id, title, description, category, due_date, completed, completed_at, created_at, updated_at`

// SQLTaskRepository implements task.Repository and the analytics task
// source on the tasks table.
type SQLTaskRepository struct {
	conn database.Connection
}

// NewSQLTaskRepository creates a task repository on conn.
func NewSQLTaskRepository(conn database.Connection) *SQLTaskRepository {
	return &SQLTaskRepository{conn: conn}
}

func (r *SQLTaskRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

// Save inserts or updates a task.
func (r *SQLTaskRepository) Save(ctx context.Context, t *task.Task) error {
	_, err := r.exec(ctx).Exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			due_date = excluded.due_date,
			completed = excluded.completed,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at`,
		t.ID().String(),
		t.UserID().String(),
		t.Title(),
		t.Description(),
		t.Category(),
		convert.FormatTime(t.DueDate()),
		convert.BoolToInt(t.IsCompleted()),
		convert.NullableTime(t.CompletedAt()),
		convert.FormatTime(t.CreatedAt()),
		convert.FormatTime(t.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *SQLTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	row := r.exec(ctx).QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String())
	t, err := scanTask(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return t, nil
}

// FindByUserID lists a user's tasks by due date.
func (r *SQLTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY due_date, created_at`, userID.String())
}

// Delete removes a task. Deleting a missing task is not an error.
func (r *SQLTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.exec(ctx).Exec(ctx, `DELETE FROM tasks WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CountOverdue counts open tasks due before now.
func (r *SQLTaskRepository) CountOverdue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	var n int
	err := r.exec(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE user_id = ? AND completed = 0 AND due_date < ?`,
		userID.String(), convert.FormatTime(now),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count overdue tasks: %w", err)
	}
	return n, nil
}

// CompletedDates returns the completion time of every completed task.
func (r *SQLTaskRepository) CompletedDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	rows, err := r.exec(ctx).Query(ctx, `
		SELECT completed_at FROM tasks
		WHERE user_id = ? AND completed = 1 AND completed_at IS NOT NULL
		ORDER BY completed_at`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list completion dates: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan completion date: %w", err)
		}
		ts, err := convert.ParseTime(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

// CountOngoingBetween counts open tasks created or due in [from, to).
func (r *SQLTaskRepository) CountOngoingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	f, t := convert.FormatTime(from), convert.FormatTime(to)
	var n int
	err := r.exec(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE user_id = ? AND completed = 0
		  AND ((created_at >= ? AND created_at < ?) OR (due_date >= ? AND due_date < ?))`,
		userID.String(), f, t, f, t,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ongoing tasks: %w", err)
	}
	return n, nil
}

// ListCreatedBetween returns tasks created in [from, to).
func (r *SQLTaskRepository) ListCreatedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]analytics.TaskSnapshot, error) {
	tasks, err := r.query(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at`,
		userID.String(), convert.FormatTime(from), convert.FormatTime(to),
	)
	if err != nil {
		return nil, err
	}
	return snapshots(tasks), nil
}

// ListAll returns every task of the user.
func (r *SQLTaskRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]analytics.TaskSnapshot, error) {
	tasks, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return snapshots(tasks), nil
}

func (r *SQLTaskRepository) query(ctx context.Context, q string, args ...any) ([]*task.Task, error) {
	rows, err := r.exec(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTask(row database.Row) (*task.Task, error) {
	var (
		id, userID, title, description, category string
		due, created, updated                    string
		completed                                int
		completedAt                              sql.NullString
	)
	if err := row.Scan(&id, &userID, &title, &description, &category, &due, &completed, &completedAt, &created, &updated); err != nil {
		return nil, err
	}

	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task id: %w", err)
	}
	owner, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	dueDate, err := convert.ParseTime(due)
	if err != nil {
		return nil, err
	}
	doneAt, err := convert.ParseNullableTime(completedAt)
	if err != nil {
		return nil, err
	}
	createdAt, err := convert.ParseTime(created)
	if err != nil {
		return nil, err
	}
	updatedAt, err := convert.ParseTime(updated)
	if err != nil {
		return nil, err
	}

	return task.Rehydrate(taskID, owner, title, description, category, dueDate, completed == 1, doneAt, createdAt, updatedAt), nil
}

func snapshots(tasks []*task.Task) []analytics.TaskSnapshot {
	out := make([]analytics.TaskSnapshot, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Snapshot())
	}
	return out
}
