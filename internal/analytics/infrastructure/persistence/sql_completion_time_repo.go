package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/convert"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/database"
)

// SQLCompletionTimeRepository implements domain.CompletionTimeRepository on
// the completion_times table.
type SQLCompletionTimeRepository struct {
	sqlRepo
}

func NewSQLCompletionTimeRepository(conn database.Connection) *SQLCompletionTimeRepository {
	return &SQLCompletionTimeRepository{sqlRepo{conn: conn}}
}

func (r *SQLCompletionTimeRepository) Exists(ctx context.Context, userID, taskID uuid.UUID) (bool, error) {
	var n int
	err := r.exec(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM completion_times WHERE user_id = ? AND task_id = ?`,
		userID.String(), taskID.String(),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check completion time: %w", err)
	}
	return n > 0, nil
}

func (r *SQLCompletionTimeRepository) Create(ctx context.Context, rec *domain.CompletionTimeRecord) (bool, error) {
	res, err := r.exec(ctx).Exec(ctx, `
		INSERT INTO completion_times (user_id, task_id, task_title, task_created_at, task_completed_at, completion_time_hours, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, task_id) DO NOTHING`,
		rec.UserID.String(), rec.TaskID.String(), rec.TaskTitle,
		convert.FormatTime(rec.TaskCreatedAt), convert.FormatTime(rec.TaskCompletedAt),
		rec.Hours, convert.FormatTime(rec.RecordedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert completion time: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLCompletionTimeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CompletionTimeRecord, error) {
	rows, err := r.exec(ctx).Query(ctx, `
		SELECT task_id, task_title, task_created_at, task_completed_at, completion_time_hours, recorded_at
		FROM completion_times
		WHERE user_id = ?
		ORDER BY recorded_at`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list completion times: %w", err)
	}
	defer rows.Close()

	var out []*domain.CompletionTimeRecord
	for rows.Next() {
		var taskID, created, completed, recorded string
		rec := &domain.CompletionTimeRecord{UserID: userID}
		if err := rows.Scan(&taskID, &rec.TaskTitle, &created, &completed, &rec.Hours, &recorded); err != nil {
			return nil, err
		}
		if rec.TaskID, err = uuid.Parse(taskID); err != nil {
			return nil, fmt.Errorf("parse task_id: %w", err)
		}
		if rec.TaskCreatedAt, err = convert.ParseTime(created); err != nil {
			return nil, err
		}
		if rec.TaskCompletedAt, err = convert.ParseTime(completed); err != nil {
			return nil, err
		}
		if rec.RecordedAt, err = convert.ParseTime(recorded); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
