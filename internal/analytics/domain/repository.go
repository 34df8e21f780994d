package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrLedgerNotFound is returned by Find methods when the user has no record.
var ErrLedgerNotFound = errors.New("analytics ledger not found")

// StatsRepository persists StatsLedgers, one per user.
type StatsRepository interface {
	// GetOrCreate returns the user's ledger, creating an empty one if needed.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*StatsLedger, error)
	Find(ctx context.Context, userID uuid.UUID) (*StatsLedger, error)
	Save(ctx context.Context, ledger *StatsLedger) error
	ListAll(ctx context.Context) ([]*StatsLedger, error)
}

// ProductivityRepository persists ProductivityWeeks keyed by (user, weekStart).
type ProductivityRepository interface {
	GetOrCreateWeek(ctx context.Context, userID uuid.UUID, weekStart string) (*ProductivityWeek, error)
	FindWeek(ctx context.Context, userID uuid.UUID, weekStart string) (*ProductivityWeek, error)
	Save(ctx context.Context, week *ProductivityWeek) error
}

// StreakRepository persists CompletionStreaks, one per user.
type StreakRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*CompletionStreak, error)
	Find(ctx context.Context, userID uuid.UUID) (*CompletionStreak, error)
	Save(ctx context.Context, streak *CompletionStreak) error
}

// CompletionTimeRepository stores CompletionTimeRecords keyed by (user, task).
type CompletionTimeRepository interface {
	Exists(ctx context.Context, userID, taskID uuid.UUID) (bool, error)
	// Create inserts rec unless a record for the task exists and reports
	// whether it was inserted.
	Create(ctx context.Context, rec *CompletionTimeRecord) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*CompletionTimeRecord, error)
}

// BadgeRepository persists BadgeStates, one per user.
type BadgeRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*BadgeState, error)
	Find(ctx context.Context, userID uuid.UUID) (*BadgeState, error)
	Save(ctx context.Context, state *BadgeState) error
	ListAll(ctx context.Context) ([]*BadgeState, error)
}

// TaskSource is the read side of the task store that analytics recomputes from.
type TaskSource interface {
	CountOverdue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	// CompletedDates returns completedAt of every completed task.
	CompletedDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
	// CountOngoingBetween counts open tasks created or due in [from, to).
	CountOngoingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	ListCreatedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]TaskSnapshot, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]TaskSnapshot, error)
}

// Repositories groups the ledger stores used by the engine.
type Repositories struct {
	Stats           StatsRepository
	Productivity    ProductivityRepository
	Streaks         StreakRepository
	CompletionTimes CompletionTimeRepository
	Badges          BadgeRepository
}
