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

// SQLStreakRepository implements domain.StreakRepository on the
// completion_streaks table.
type SQLStreakRepository struct {
	sqlRepo
}

func NewSQLStreakRepository(conn database.Connection) *SQLStreakRepository {
	return &SQLStreakRepository{sqlRepo{conn: conn}}
}

func (r *SQLStreakRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.CompletionStreak, error) {
	now := convert.FormatTime(time.Now())
	_, err := r.exec(ctx).Exec(ctx, `
		INSERT INTO completion_streaks (user_id, created_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		userID.String(), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create completion streak: %w", err)
	}
	return r.Find(ctx, userID)
}

func (r *SQLStreakRepository) Find(ctx context.Context, userID uuid.UUID) (*domain.CompletionStreak, error) {
	row := r.exec(ctx).QueryRow(ctx, `
		SELECT current_streak, longest_streak, last_completed_date, completed_dates, updated_at
		FROM completion_streaks
		WHERE user_id = ?`,
		userID.String(),
	)

	var dates, updated string
	s := &domain.CompletionStreak{UserID: userID}
	if err := row.Scan(&s.CurrentStreak, &s.LongestStreak, &s.LastCompletedDate, &dates, &updated); err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, fmt.Errorf("find completion streak: %w", err)
	}
	if err := decodeJSON("completed_dates", dates, &s.CompletedDates); err != nil {
		return nil, err
	}
	if s.CompletedDates == nil {
		s.CompletedDates = []string{}
	}
	var err error
	if s.UpdatedAt, err = convert.ParseTime(updated); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLStreakRepository) Save(ctx context.Context, s *domain.CompletionStreak) error {
	dates, err := encodeJSON("completed_dates", s.CompletedDates)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.exec(ctx).Exec(ctx, `
		INSERT INTO completion_streaks (user_id, current_streak, longest_streak, last_completed_date, completed_dates, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_completed_date = excluded.last_completed_date,
			completed_dates = excluded.completed_dates,
			updated_at = excluded.updated_at`,
		s.UserID.String(), s.CurrentStreak, s.LongestStreak, s.LastCompletedDate, dates,
		convert.FormatTime(now), convert.FormatTime(now),
	)
	if err != nil {
		return fmt.Errorf("save completion streak: %w", err)
	}
	s.UpdatedAt = now.UTC()
	return nil
}
