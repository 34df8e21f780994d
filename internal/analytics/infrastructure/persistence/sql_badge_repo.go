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

const badgeColumns = `user_id,
	task_level, task_progress, task_next_milestone, task_badge_name, task_badge_emoji, task_earned,
	streak_level, streak_progress, streak_next_milestone, streak_badge_name, streak_badge_emoji, streak_earned,
	total_tasks_completed, current_streak, badges_earned, updated_at`

// SQLBadgeRepository implements domain.BadgeRepository on the user_badges table.
type SQLBadgeRepository struct {
	sqlRepo
}

func NewSQLBadgeRepository(conn database.Connection) *SQLBadgeRepository {
	return &SQLBadgeRepository{sqlRepo{conn: conn}}
}

func (r *SQLBadgeRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.BadgeState, error) {
	if err := r.upsert(ctx, domain.NewBadgeState(userID), false); err != nil {
		return nil, fmt.Errorf("create badge state: %w", err)
	}
	return r.Find(ctx, userID)
}

func (r *SQLBadgeRepository) Find(ctx context.Context, userID uuid.UUID) (*domain.BadgeState, error) {
	row := r.exec(ctx).QueryRow(ctx, `SELECT `+badgeColumns+` FROM user_badges WHERE user_id = ?`, userID.String())
	b, err := scanBadge(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrLedgerNotFound
	}
	return b, err
}

func (r *SQLBadgeRepository) Save(ctx context.Context, b *domain.BadgeState) error {
	if err := r.upsert(ctx, b, true); err != nil {
		return fmt.Errorf("save badge state: %w", err)
	}
	return nil
}

func (r *SQLBadgeRepository) upsert(ctx context.Context, b *domain.BadgeState, overwrite bool) error {
	earned, err := encodeJSON("badges_earned", b.BadgesEarned)
	if err != nil {
		return err
	}

	conflict := `ON CONFLICT (user_id) DO NOTHING`
	if overwrite {
		conflict = `ON CONFLICT (user_id) DO UPDATE SET
			task_level = excluded.task_level,
			task_progress = excluded.task_progress,
			task_next_milestone = excluded.task_next_milestone,
			task_badge_name = excluded.task_badge_name,
			task_badge_emoji = excluded.task_badge_emoji,
			task_earned = excluded.task_earned,
			streak_level = excluded.streak_level,
			streak_progress = excluded.streak_progress,
			streak_next_milestone = excluded.streak_next_milestone,
			streak_badge_name = excluded.streak_badge_name,
			streak_badge_emoji = excluded.streak_badge_emoji,
			streak_earned = excluded.streak_earned,
			total_tasks_completed = excluded.total_tasks_completed,
			current_streak = excluded.current_streak,
			badges_earned = excluded.badges_earned,
			updated_at = excluded.updated_at`
	}

	now := time.Now()
	task, streak := b.TaskCompletion, b.Streak
	_, err = r.exec(ctx).Exec(ctx, `
		INSERT INTO user_badges (`+badgeColumns+`, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`+conflict,
		b.UserID.String(),
		task.CurrentLevel, task.CurrentProgress, task.NextMilestone, task.BadgeName, task.BadgeEmoji, convert.BoolToInt(task.Earned),
		streak.CurrentLevel, streak.CurrentProgress, streak.NextMilestone, streak.BadgeName, streak.BadgeEmoji, convert.BoolToInt(streak.Earned),
		b.TotalTasksCompleted, b.CurrentStreak, earned,
		convert.FormatTime(now), convert.FormatTime(now),
	)
	if err != nil {
		return err
	}
	if overwrite {
		b.UpdatedAt = now.UTC()
	}
	return nil
}

func (r *SQLBadgeRepository) ListAll(ctx context.Context) ([]*domain.BadgeState, error) {
	rows, err := r.exec(ctx).Query(ctx, `SELECT `+badgeColumns+` FROM user_badges ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list badge states: %w", err)
	}
	defer rows.Close()

	var out []*domain.BadgeState
	for rows.Next() {
		b, err := scanBadge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBadge(row database.Row) (*domain.BadgeState, error) {
	var (
		userID, earned, updated string
		taskEarned, streakEarn  int
		b                       domain.BadgeState
	)
	task, streak := &b.TaskCompletion, &b.Streak
	err := row.Scan(&userID,
		&task.CurrentLevel, &task.CurrentProgress, &task.NextMilestone, &task.BadgeName, &task.BadgeEmoji, &taskEarned,
		&streak.CurrentLevel, &streak.CurrentProgress, &streak.NextMilestone, &streak.BadgeName, &streak.BadgeEmoji, &streakEarn,
		&b.TotalTasksCompleted, &b.CurrentStreak, &earned, &updated,
	)
	if err != nil {
		return nil, err
	}

	if b.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parse user_id: %w", err)
	}
	task.Earned = taskEarned != 0
	streak.Earned = streakEarn != 0
	if err := decodeJSON("badges_earned", earned, &b.BadgesEarned); err != nil {
		return nil, err
	}
	if b.BadgesEarned == nil {
		b.BadgesEarned = []domain.EarnedBadge{}
	}
	if b.UpdatedAt, err = convert.ParseTime(updated); err != nil {
		return nil, err
	}
	return &b, nil
}
