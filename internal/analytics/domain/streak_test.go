package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCompletionStreak_ConsecutiveDaysThenGap(t *testing.T) {
	s := NewCompletionStreak(uuid.New())

	assert.True(t, s.AddCompletion("2024-06-10", "2024-06-10"))
	assert.True(t, s.AddCompletion("2024-06-11", "2024-06-11"))
	assert.True(t, s.AddCompletion("2024-06-12", "2024-06-12"))
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)

	assert.True(t, s.AddCompletion("2024-06-14", "2024-06-14"))
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
	assert.Equal(t, "2024-06-14", s.LastCompletedDate)
}

func TestCompletionStreak_SameDayIsNoop(t *testing.T) {
	s := NewCompletionStreak(uuid.New())
	s.AddCompletion("2024-06-10", "2024-06-10")

	assert.False(t, s.AddCompletion("2024-06-10", "2024-06-10"))
	assert.Len(t, s.CompletedDates, 1)
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		today string
		want  int
	}{
		{"empty", nil, "2024-06-12", 0},
		{"chain ending yesterday", []string{"2024-06-10", "2024-06-11"}, "2024-06-12", 2},
		{"chain ending two days ago", []string{"2024-06-09", "2024-06-10"}, "2024-06-12", 0},
		{"unsorted input", []string{"2024-06-12", "2024-06-10", "2024-06-11"}, "2024-06-12", 3},
		{"gap breaks", []string{"2024-06-08", "2024-06-10", "2024-06-11", "2024-06-12"}, "2024-06-12", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStreak(tt.dates, tt.today))
		})
	}
}
