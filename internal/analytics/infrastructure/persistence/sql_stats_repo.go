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

const statsColumns = `user_id, total_assigned, total_completed, total_overdue, daily_stats, category_completions, updated_at`

// SQLStatsRepository implements domain.StatsRepository on the user_stats table.
type SQLStatsRepository struct {
	sqlRepo
}

func NewSQLStatsRepository(conn database.Connection) *SQLStatsRepository {
	return &SQLStatsRepository{sqlRepo{conn: conn}}
}

func (r *SQLStatsRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.StatsLedger, error) {
	now := convert.FormatTime(time.Now())
	_, err := r.exec(ctx).Exec(ctx, `
		INSERT INTO user_stats (user_id, created_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		userID.String(), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create stats ledger: %w", err)
	}
	return r.Find(ctx, userID)
}

func (r *SQLStatsRepository) Find(ctx context.Context, userID uuid.UUID) (*domain.StatsLedger, error) {
	row := r.exec(ctx).QueryRow(ctx, `SELECT `+statsColumns+` FROM user_stats WHERE user_id = ?`, userID.String())
	l, err := scanStats(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrLedgerNotFound
	}
	return l, err
}

func (r *SQLStatsRepository) Save(ctx context.Context, l *domain.StatsLedger) error {
	daily, err := encodeJSON("daily_stats", l.DailyStats)
	if err != nil {
		return err
	}
	cats, err := encodeJSON("category_completions", l.CategoryCompletions)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.exec(ctx).Exec(ctx, `
		INSERT INTO user_stats (`+statsColumns+`, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			total_assigned = excluded.total_assigned,
			total_completed = excluded.total_completed,
			total_overdue = excluded.total_overdue,
			daily_stats = excluded.daily_stats,
			category_completions = excluded.category_completions,
			updated_at = excluded.updated_at`,
		l.UserID.String(), l.TotalAssigned, l.TotalCompleted, l.TotalOverdue,
		daily, cats, convert.FormatTime(now), convert.FormatTime(now),
	)
	if err != nil {
		return fmt.Errorf("save stats ledger: %w", err)
	}
	l.UpdatedAt = now.UTC()
	return nil
}

func (r *SQLStatsRepository) ListAll(ctx context.Context) ([]*domain.StatsLedger, error) {
	rows, err := r.exec(ctx).Query(ctx, `SELECT `+statsColumns+` FROM user_stats ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list stats ledgers: %w", err)
	}
	defer rows.Close()

	var out []*domain.StatsLedger
	for rows.Next() {
		l, err := scanStats(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanStats(row database.Row) (*domain.StatsLedger, error) {
	var (
		userID, daily, cats, updated string
		l                            domain.StatsLedger
	)
	if err := row.Scan(&userID, &l.TotalAssigned, &l.TotalCompleted, &l.TotalOverdue, &daily, &cats, &updated); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user_id: %w", err)
	}
	l.UserID = id
	if err := decodeJSON("daily_stats", daily, &l.DailyStats); err != nil {
		return nil, err
	}
	if err := decodeJSON("category_completions", cats, &l.CategoryCompletions); err != nil {
		return nil, err
	}
	if l.DailyStats == nil {
		l.DailyStats = []domain.DailyStats{}
	}
	if l.CategoryCompletions == nil {
		l.CategoryCompletions = make(map[string]int)
	}
	if l.UpdatedAt, err = convert.ParseTime(updated); err != nil {
		return nil, err
	}
	return &l, nil
}
