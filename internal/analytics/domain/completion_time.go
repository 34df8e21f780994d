package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CompletionTimeRecord is the creation-to-completion latency of one task.
// It is written once and never updated.
type CompletionTimeRecord struct {
	UserID          uuid.UUID `json:"userId"`
	TaskID          uuid.UUID `json:"taskId"`
	TaskTitle       string    `json:"taskTitle"`
	TaskCreatedAt   time.Time `json:"createdAt"`
	TaskCompletedAt time.Time `json:"completedAt"`
	Hours           float64   `json:"completionTimeHours"`
	RecordedAt      time.Time `json:"recordedAt"`
}

// NewCompletionTimeRecord returns false when the task has no positive latency.
func NewCompletionTimeRecord(task TaskSnapshot, now time.Time) (*CompletionTimeRecord, bool) {
	if task.CompletedAt == nil || task.CreatedAt.IsZero() {
		return nil, false
	}
	hours := task.CompletedAt.Sub(task.CreatedAt).Hours()
	if hours <= 0 {
		return nil, false
	}
	return &CompletionTimeRecord{
		UserID:          task.UserID,
		TaskID:          task.ID,
		TaskTitle:       task.Title,
		TaskCreatedAt:   task.CreatedAt.UTC(),
		TaskCompletedAt: task.CompletedAt.UTC(),
		Hours:           hours,
		RecordedAt:      now.UTC(),
	}, true
}

// AverageHours is the mean latency rounded to one decimal, or 0.
func AverageHours(records []*CompletionTimeRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Hours
	}
	return math.Round(sum/float64(len(records))*10) / 10
}
