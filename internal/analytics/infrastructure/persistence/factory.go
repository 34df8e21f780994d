package persistence

import (
	"github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/database"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/docstore"
)

// NewSQLRepositories builds ledger stores on the SQL connection.
func NewSQLRepositories(conn database.Connection) domain.Repositories {
	return domain.Repositories{
		Stats:           NewSQLStatsRepository(conn),
		Productivity:    NewSQLProductivityRepository(conn),
		Streaks:         NewSQLStreakRepository(conn),
		CompletionTimes: NewSQLCompletionTimeRepository(conn),
		Badges:          NewSQLBadgeRepository(conn),
	}
}

// NewDocRepositories builds ledger stores on a document store.
func NewDocRepositories(store docstore.Store) domain.Repositories {
	return domain.Repositories{
		Stats:           NewDocStatsRepository(store),
		Productivity:    NewDocProductivityRepository(store),
		Streaks:         NewDocStreakRepository(store),
		CompletionTimes: NewDocCompletionTimeRepository(store),
		Badges:          NewDocBadgeRepository(store),
	}
}
