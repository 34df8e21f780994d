package domain

import (
	"time"

	"github.com/google/uuid"
	shared "github.com/imsachin001/chronosync/internal/shared/domain"
)

const (
	AggregateBadgeState       = "BadgeState"
	AggregateCompletionStreak = "CompletionStreak"

	RoutingKeyBadgeEarned   = "analytics.badge.earned"
	RoutingKeyStreakUpdated = "analytics.streak.updated"
)

// BadgeEarned is raised the first time a user reaches a milestone.
type BadgeEarned struct {
	shared.BaseEvent
	Name  string    `json:"name"`
	Emoji string    `json:"emoji"`
	Level int       `json:"level"`
	Type  BadgeType `json:"type"`
}

func NewBadgeEarned(userID uuid.UUID, badge EarnedBadge) *BadgeEarned {
	return &BadgeEarned{
		BaseEvent: shared.NewBaseEvent(userID, AggregateBadgeState, RoutingKeyBadgeEarned, badge.EarnedAt),
		Name:      badge.Name,
		Emoji:     badge.Emoji,
		Level:     badge.Level,
		Type:      badge.Type,
	}
}

// StreakUpdated is raised when a new completion day changes the streak record.
type StreakUpdated struct {
	shared.BaseEvent
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	Date          string `json:"date"`
}

func NewStreakUpdated(s *CompletionStreak, at time.Time) *StreakUpdated {
	return &StreakUpdated{
		BaseEvent:     shared.NewBaseEvent(s.UserID, AggregateCompletionStreak, RoutingKeyStreakUpdated, at),
		CurrentStreak: s.CurrentStreak,
		LongestStreak: s.LongestStreak,
		Date:          s.LastCompletedDate,
	}
}
