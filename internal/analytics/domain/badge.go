package domain

import (
	"time"

	"github.com/google/uuid"
)

// BadgeType identifies a badge track.
type BadgeType string

const (
	BadgeTypeTask   BadgeType = "task"
	BadgeTypeStreak BadgeType = "streak"
)

// BadgeTrack is the progress of one badge track.
type BadgeTrack struct {
	CurrentLevel    int    `json:"currentLevel"`
	CurrentProgress int    `json:"currentProgress"`
	NextMilestone   int    `json:"nextMilestone"`
	BadgeName       string `json:"badgeName"`
	BadgeEmoji      string `json:"badgeEmoji"`
	Earned          bool   `json:"earned"`
}

// EarnedBadge is an entry in a user's badge history.
type EarnedBadge struct {
	Name     string    `json:"name"`
	Emoji    string    `json:"emoji"`
	Level    int       `json:"level"`
	Type     BadgeType `json:"type"`
	EarnedAt time.Time `json:"earnedAt"`
}

// BadgeState holds both badge tracks for a user.
type BadgeState struct {
	UserID              uuid.UUID     `json:"userId"`
	TaskCompletion      BadgeTrack    `json:"taskCompletionBadge"`
	Streak              BadgeTrack    `json:"streakBadge"`
	TotalTasksCompleted int           `json:"totalTasksCompleted"`
	CurrentStreak       int           `json:"currentStreak"`
	BadgesEarned        []EarnedBadge `json:"badgesEarned"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

func defaultTrack(table []Milestone) BadgeTrack {
	first := table[0]
	return BadgeTrack{
		NextMilestone: first.Threshold,
		BadgeName:     first.Name,
		BadgeEmoji:    first.Emoji,
	}
}

// NewBadgeState creates a state with both tracks at level 0.
func NewBadgeState(userID uuid.UUID) *BadgeState {
	return &BadgeState{
		UserID:         userID,
		TaskCompletion: defaultTrack(TaskMilestones),
		Streak:         defaultTrack(StreakMilestones),
		BadgesEarned:   []EarnedBadge{},
	}
}

// HasEarned reports whether the history already holds the badge.
func (b *BadgeState) HasEarned(t BadgeType, level int) bool {
	for _, e := range b.BadgesEarned {
		if e.Type == t && e.Level == level {
			return true
		}
	}
	return false
}

// award appends m to the history and returns it. Every promotion is an
// award: a task level lost to an uncompletion and reached again is recorded
// and announced again.
func (b *BadgeState) award(t BadgeType, m *Milestone, now time.Time) *EarnedBadge {
	e := EarnedBadge{Name: m.Name, Emoji: m.Emoji, Level: m.Level, Type: t, EarnedAt: now.UTC()}
	b.BadgesEarned = append(b.BadgesEarned, e)
	return &e
}

// RecordTaskCompletion moves the lifetime counter by one and re-resolves
// the task track. It returns the badge earned by this step, if any.
func (b *BadgeState) RecordTaskCompletion(completed bool, now time.Time) *EarnedBadge {
	if completed {
		b.TotalTasksCompleted++
	} else {
		b.TotalTasksCompleted = max(0, b.TotalTasksCompleted-1)
	}

	res := ResolveMilestone(TaskMilestones, b.TotalTasksCompleted, b.TaskCompletion.CurrentLevel)
	var newly *EarnedBadge
	if res.Promoted {
		newly = b.award(BadgeTypeTask, res.Reached, now)
	}
	b.applyTaskResolution(res)
	b.UpdatedAt = now.UTC()
	return newly
}

// applyTaskResolution follows the counter in both directions: when it drops
// below a reached threshold the level, name and emoji walk back down.
func (b *BadgeState) applyTaskResolution(res MilestoneResolution) {
	if res.Reached == nil {
		b.TaskCompletion = defaultTrack(TaskMilestones)
		b.TaskCompletion.CurrentProgress = res.Progress
		return
	}
	b.TaskCompletion = BadgeTrack{
		CurrentLevel:    res.Reached.Level,
		CurrentProgress: res.Progress,
		NextMilestone:   res.NextMilestone,
		BadgeName:       res.Reached.Name,
		BadgeEmoji:      res.Reached.Emoji,
		Earned:          true,
	}
}

// ResyncTaskTrack realigns the task track with TotalTasksCompleted without
// touching the badge history or the streak track. It reports whether the
// track changed.
func (b *BadgeState) ResyncTaskTrack() bool {
	before := b.TaskCompletion
	b.applyTaskResolution(ResolveMilestone(TaskMilestones, b.TotalTasksCompleted, b.TaskCompletion.CurrentLevel))
	return before != b.TaskCompletion
}

// UpdateStreak records the current streak and re-resolves the streak track.
// An earned streak level is never lowered; progress always follows the
// counter.
func (b *BadgeState) UpdateStreak(streak int, now time.Time) *EarnedBadge {
	b.CurrentStreak = max(0, streak)

	res := ResolveMilestone(StreakMilestones, b.CurrentStreak, b.Streak.CurrentLevel)
	var newly *EarnedBadge
	if res.Promoted {
		newly = b.award(BadgeTypeStreak, res.Reached, now)
		b.Streak.CurrentLevel = res.Reached.Level
		b.Streak.BadgeName = res.Reached.Name
		b.Streak.BadgeEmoji = res.Reached.Emoji
		b.Streak.Earned = true
	}
	b.Streak.NextMilestone = res.NextMilestone
	b.Streak.CurrentProgress = res.Progress
	b.UpdatedAt = now.UTC()
	return newly
}
