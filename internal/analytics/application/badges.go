package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/internal/analytics/domain"
)

// BadgeSummary is the displayed badge of one track.
type BadgeSummary struct {
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
	Level  int    `json:"level"`
	Earned bool   `json:"earned"`
}

// BadgeProgress is how far a track is toward its next milestone.
type BadgeProgress struct {
	Current       int `json:"current"`
	NextMilestone int `json:"nextMilestone"`
	Percentage    int `json:"percentage"`
}

// BadgeData is the badge view for both tracks.
type BadgeData struct {
	TaskBadge      BadgeSummary         `json:"taskBadge"`
	TaskProgress   BadgeProgress        `json:"taskProgress"`
	StreakBadge    BadgeSummary         `json:"streakBadge"`
	StreakProgress BadgeProgress        `json:"streakProgress"`
	TotalCompleted int                  `json:"totalCompleted"`
	CurrentStreak  int                  `json:"currentStreak"`
	BadgesEarned   []domain.EarnedBadge `json:"badgesEarned"`
}

// BadgeData returns both tracks with progress percentages.
func (e *Engine) BadgeData(ctx context.Context, userID uuid.UUID) BadgeData {
	b, err := e.repos.Badges.GetOrCreate(ctx, userID)
	if err != nil {
		e.fail(ctx, "badges.data", userID, err)
		b = domain.NewBadgeState(userID)
	}
	return badgeView(b)
}

func badgeView(b *domain.BadgeState) BadgeData {
	earned := b.BadgesEarned
	if earned == nil {
		earned = []domain.EarnedBadge{}
	}
	return BadgeData{
		TaskBadge: summary(b.TaskCompletion),
		TaskProgress: BadgeProgress{
			Current:       b.TotalTasksCompleted,
			NextMilestone: b.TaskCompletion.NextMilestone,
			Percentage:    domain.ProgressPercentage(domain.TaskMilestones, b.TotalTasksCompleted, b.TaskCompletion.NextMilestone),
		},
		StreakBadge: summary(b.Streak),
		StreakProgress: BadgeProgress{
			Current:       b.CurrentStreak,
			NextMilestone: b.Streak.NextMilestone,
			Percentage:    domain.ProgressPercentage(domain.StreakMilestones, b.CurrentStreak, b.Streak.NextMilestone),
		},
		TotalCompleted: b.TotalTasksCompleted,
		CurrentStreak:  b.CurrentStreak,
		BadgesEarned:   earned,
	}
}

func summary(t domain.BadgeTrack) BadgeSummary {
	return BadgeSummary{Name: t.BadgeName, Emoji: t.BadgeEmoji, Level: t.CurrentLevel, Earned: t.Earned}
}
