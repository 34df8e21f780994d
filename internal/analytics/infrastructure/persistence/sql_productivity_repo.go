package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/convert"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/database"
)

// SQLProductivityRepository implements domain.ProductivityRepository on the
// productivity_scores table.
type SQLProductivityRepository struct {
	sqlRepo
}

func NewSQLProductivityRepository(conn database.Connection) *SQLProductivityRepository {
	return &SQLProductivityRepository{sqlRepo{conn: conn}}
}

func (r *SQLProductivityRepository) GetOrCreateWeek(ctx context.Context, userID uuid.UUID, weekStart string) (*domain.ProductivityWeek, error) {
	fresh := domain.NewProductivityWeek(userID, weekStart)
	scores, err := encodeJSON("daily_scores", fresh.DailyScores)
	if err != nil {
		return nil, err
	}

	now := convert.FormatTime(time.Now())
	_, err = r.exec(ctx).Exec(ctx, `
		INSERT INTO productivity_scores (user_id, week_start, week_end, daily_scores, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, week_start) DO NOTHING`,
		userID.String(), weekStart, fresh.WeekEnd, scores, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create productivity week: %w", err)
	}
	return r.FindWeek(ctx, userID, weekStart)
}

func (r *SQLProductivityRepository) FindWeek(ctx context.Context, userID uuid.UUID, weekStart string) (*domain.ProductivityWeek, error) {
	row := r.exec(ctx).QueryRow(ctx, `
		SELECT week_end, daily_scores, updated_at
		FROM productivity_scores
		WHERE user_id = ? AND week_start = ?`,
		userID.String(), weekStart,
	)

	var scores, updated string
	w := &domain.ProductivityWeek{UserID: userID, WeekStart: weekStart}
	if err := row.Scan(&w.WeekEnd, &scores, &updated); err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, fmt.Errorf("find productivity week: %w", err)
	}
	if err := decodeJSON("daily_scores", scores, &w.DailyScores); err != nil {
		return nil, err
	}
	var err error
	if w.UpdatedAt, err = convert.ParseTime(updated); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *SQLProductivityRepository) Save(ctx context.Context, w *domain.ProductivityWeek) error {
	scores, err := encodeJSON("daily_scores", w.DailyScores)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.exec(ctx).Exec(ctx, `
		INSERT INTO productivity_scores (user_id, week_start, week_end, daily_scores, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, week_start) DO UPDATE SET
			week_end = excluded.week_end,
			daily_scores = excluded.daily_scores,
			updated_at = excluded.updated_at`,
		w.UserID.String(), w.WeekStart, w.WeekEnd, scores, convert.FormatTime(now), convert.FormatTime(now),
	)
	if err != nil {
		return fmt.Errorf("save productivity week: %w", err)
	}
	w.UpdatedAt = now.UTC()
	return nil
}
