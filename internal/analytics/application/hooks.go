package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/internal/analytics/domain"
)

// OnCreate records a newly created task.
func (e *Engine) OnCreate(ctx context.Context, userID uuid.UUID, task domain.TaskSnapshot) {
	e.statsOnCreate(ctx, userID, task)
	e.productivityOnCreate(ctx, userID, task)
}

// OnToggle records a completion toggle. It runs after the task itself has
// been saved and returns the badge to announce, if any. When both tracks
// earn a badge in the same toggle the task badge wins.
func (e *Engine) OnToggle(ctx context.Context, userID uuid.UUID, task domain.TaskSnapshot, completed bool) *domain.EarnedBadge {
	e.statsOnToggle(ctx, userID, task, completed)
	e.productivityOnToggle(ctx, userID, task, completed)
	streakBadge := e.streakOnToggle(ctx, userID, task, completed)
	taskBadge := e.taskBadgeOnToggle(ctx, userID, completed)
	if completed {
		e.recordCompletionTime(ctx, userID, task)
	}

	if taskBadge != nil {
		return taskBadge
	}
	return streakBadge
}

// OnDelete runs before the task is removed. Assigned, completed and
// productivity history are permanent, so only the overdue count moves.
func (e *Engine) OnDelete(ctx context.Context, userID uuid.UUID, task domain.TaskSnapshot) {
	exclude := 0
	if task.IsOverdue(e.now()) {
		exclude = 1
	}
	e.recomputeOverdue(ctx, userID, exclude)
}

func (e *Engine) statsOnCreate(ctx context.Context, userID uuid.UUID, task domain.TaskSnapshot) {
	const op = "stats.on_create"
	l, err := e.repos.Stats.GetOrCreate(ctx, userID)
	if err != nil {
		e.fail(ctx, op, userID, err)
		return
	}
	l.RecordCreated(e.today(), task.Category)
	if err := e.repos.Stats.Save(ctx, l); err != nil {
		e.fail(ctx, op, userID, err)
	}
}

func (e *Engine) statsOnToggle(ctx context.Context, userID uuid.UUID, task domain.TaskSnapshot, completed bool) {
	const op = "stats.on_toggle"
	l, err := e.repos.Stats.GetOrCreate(ctx, userID)
	if err != nil {
		e.fail(ctx, op, userID, err)
		return
	}
	// today is the wall-clock day of the toggle, not the task's due day
	l.RecordCompletion(e.today(), task.Category, completed)
	if err := e.repos.Stats.Save(ctx, l); err != nil {
		e.fail(ctx, op, userID, err)
	}
}

// recomputeOverdue refreshes totalOverdue from live tasks, minus exclude
// tasks that are about to disappear.
func (e *Engine) recomputeOverdue(ctx context.Context, userID uuid.UUID, exclude int) *domain.StatsLedger {
	const op = "stats.recompute_overdue"
	l, err := e.repos.Stats.GetOrCreate(ctx, userID)
	if err != nil {
		e.fail(ctx, op, userID, err)
		return nil
	}
	n, err := e.tasks.CountOverdue(ctx, userID, e.now())
	if err != nil {
		e.fail(ctx, op, userID, err)
		return l
	}
	l.SetOverdue(n - exclude)
	if err := e.repos.Stats.Save(ctx, l); err != nil {
		e.fail(ctx, op, userID, err)
	}
	return l
}

// productivityWeek loads the record for the week containing now. The slot
// inside it is the task's due weekday, even when the due date falls in
// another week.
func (e *Engine) productivityWeek(ctx context.Context, op string, userID uuid.UUID, task domain.TaskSnapshot) *domain.ProductivityWeek {
	if task.DueDate.IsZero() {
		e.skip(ctx, op, userID, "task has no due date")
		return nil
	}
	w, err := e.repos.Productivity.GetOrCreateWeek(ctx, userID, domain.ISOWeekStart(e.now(), e.loc))
	if err != nil {
		e.fail(ctx, op, userID, err)
		return nil
	}
	return w
}

func (e *Engine) productivityOnCreate(ctx context.Context, userID uuid.UUID, task domain.TaskSnapshot) {
	const op = "productivity.on_create"
	w := e.productivityWeek(ctx, op, userID, task)
	if w == nil {
		return
	}
	w.RecordCreated(task.DueDate.In(e.loc).Weekday())
	if err := e.repos.Productivity.Save(ctx, w); err != nil {
		e.fail(ctx, op, userID, err)
	}
}

func (e *Engine) productivityOnToggle(ctx context.Context, userID uuid.UUID, task domain.TaskSnapshot, completed bool) {
	const op = "productivity.on_toggle"
	w := e.productivityWeek(ctx, op, userID, task)
	if w == nil {
		return
	}
	w.RecordCompletion(task.DueDate.In(e.loc).Weekday(), completed)
	if err := e.repos.Productivity.Save(ctx, w); err != nil {
		e.fail(ctx, op, userID, err)
	}
}

// streakOnToggle adds the completion day to the streak. Uncompleting is a
// no-op because completion days are history.
func (e *Engine) streakOnToggle(ctx context.Context, userID uuid.UUID, task domain.TaskSnapshot, completed bool) *domain.EarnedBadge {
	const op = "streak.on_toggle"
	if !completed {
		return nil
	}
	if task.CompletedAt == nil {
		e.skip(ctx, op, userID, "completed task has no completion time")
		return nil
	}

	s, err := e.repos.Streaks.GetOrCreate(ctx, userID)
	if err != nil {
		e.fail(ctx, op, userID, err)
		return nil
	}
	if !s.AddCompletion(domain.DayKey(*task.CompletedAt, e.loc), e.today()) {
		return nil
	}
	if err := e.repos.Streaks.Save(ctx, s); err != nil {
		e.fail(ctx, op, userID, err)
		return nil
	}
	e.publish(ctx, userID, domain.NewStreakUpdated(s, e.now()))

	return e.streakBadge(ctx, userID, s.CurrentStreak)
}

func (e *Engine) streakBadge(ctx context.Context, userID uuid.UUID, streak int) *domain.EarnedBadge {
	const op = "badges.streak"
	b, err := e.repos.Badges.GetOrCreate(ctx, userID)
	if err != nil {
		e.fail(ctx, op, userID, err)
		return nil
	}
	earned := b.UpdateStreak(streak, e.now())
	if err := e.repos.Badges.Save(ctx, b); err != nil {
		e.fail(ctx, op, userID, err)
		return nil
	}
	e.announce(ctx, userID, earned)
	return earned
}

func (e *Engine) taskBadgeOnToggle(ctx context.Context, userID uuid.UUID, completed bool) *domain.EarnedBadge {
	const op = "badges.task"
	b, err := e.repos.Badges.GetOrCreate(ctx, userID)
	if err != nil {
		e.fail(ctx, op, userID, err)
		return nil
	}
	earned := b.RecordTaskCompletion(completed, e.now())
	if err := e.repos.Badges.Save(ctx, b); err != nil {
		e.fail(ctx, op, userID, err)
		return nil
	}
	e.announce(ctx, userID, earned)
	return earned
}

func (e *Engine) announce(ctx context.Context, userID uuid.UUID, earned *domain.EarnedBadge) {
	if earned == nil {
		return
	}
	e.logger.InfoContext(ctx, "badge earned",
		"user_id", userID,
		"badge", earned.Name,
		"type", earned.Type,
		"level", earned.Level,
	)
	e.publish(ctx, userID, domain.NewBadgeEarned(userID, *earned))
}

// recordCompletionTime stores the task's latency once. Later toggles of the
// same task leave the first record in place.
func (e *Engine) recordCompletionTime(ctx context.Context, userID uuid.UUID, task domain.TaskSnapshot) {
	const op = "completion_time.record"
	rec, ok := domain.NewCompletionTimeRecord(task, e.now())
	if !ok {
		return
	}
	rec.UserID = userID

	exists, err := e.repos.CompletionTimes.Exists(ctx, userID, task.ID)
	if err != nil {
		e.fail(ctx, op, userID, err)
		return
	}
	if exists {
		return
	}
	if _, err := e.repos.CompletionTimes.Create(ctx, rec); err != nil {
		e.fail(ctx, op, userID, err)
	}
}
