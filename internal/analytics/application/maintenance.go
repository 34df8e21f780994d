package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/internal/analytics/domain"
)

// FixBadgeProgress realigns every task badge track with its lifetime
// completion count and returns how many records changed. Streak tracks are
// left alone. Running it twice changes nothing the second time.
func (e *Engine) FixBadgeProgress(ctx context.Context) (int, error) {
	states, err := e.repos.Badges.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list badge states: %w", err)
	}

	fixed := 0
	for _, b := range states {
		before := b.TaskCompletion
		if !b.ResyncTaskTrack() {
			continue
		}
		if err := e.repos.Badges.Save(ctx, b); err != nil {
			return fixed, fmt.Errorf("save badge state for %s: %w", b.UserID, err)
		}
		e.logger.InfoContext(ctx, "badge progress fixed",
			"user_id", b.UserID,
			"total_completed", b.TotalTasksCompleted,
			"from_level", before.CurrentLevel,
			"to_level", b.TaskCompletion.CurrentLevel,
		)
		fixed++
	}
	return fixed, nil
}

// MigrateCategoryStats gives every daily bucket a category map and returns
// how many ledgers changed.
func (e *Engine) MigrateCategoryStats(ctx context.Context) (int, error) {
	ledgers, err := e.repos.Stats.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stats ledgers: %w", err)
	}

	migrated := 0
	for _, l := range ledgers {
		if !l.BackfillCategoryStats() {
			continue
		}
		if err := e.repos.Stats.Save(ctx, l); err != nil {
			return migrated, fmt.Errorf("save stats ledger for %s: %w", l.UserID, err)
		}
		migrated++
	}
	e.logger.InfoContext(ctx, "category stats migration finished", "ledgers", len(ledgers), "migrated", migrated)
	return migrated, nil
}

// RebuildStats replaces a user's stats ledger with one derived from the
// live tasks. History of deleted tasks is lost, so this is for ledgers that
// drifted, not routine use.
func (e *Engine) RebuildStats(ctx context.Context, userID uuid.UUID) (ComprehensiveStats, error) {
	tasks, err := e.tasks.ListAll(ctx, userID)
	if err != nil {
		return ComprehensiveStats{}, fmt.Errorf("list tasks: %w", err)
	}
	overdue, err := e.tasks.CountOverdue(ctx, userID, e.now())
	if err != nil {
		return ComprehensiveStats{}, fmt.Errorf("count overdue tasks: %w", err)
	}

	l := domain.RebuildStatsLedger(userID, tasks, overdue, e.loc)
	if err := e.repos.Stats.Save(ctx, l); err != nil {
		return ComprehensiveStats{}, fmt.Errorf("save stats ledger: %w", err)
	}
	e.logger.InfoContext(ctx, "stats ledger rebuilt", "user_id", userID, "tasks", len(tasks))
	return ComprehensiveStats{Assigned: l.TotalAssigned, Completed: l.TotalCompleted, Overdue: l.TotalOverdue}, nil
}
