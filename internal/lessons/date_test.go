package lessons

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		lessonID string
		expected time.Time
		err      error
	}{
		{name: "sunday", lessonID: "2025-12-7", expected: time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC)},
		{name: "zero padded", lessonID: "2025-03-02", expected: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
		{name: "leap day", lessonID: "2024-2-29", expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "two parts", lessonID: "2025-12", err: ErrInvalidFormat},
		{name: "four parts", lessonID: "2025-12-7-1", err: ErrInvalidFormat},
		{name: "no separator", lessonID: "20251207", err: ErrInvalidFormat},
		{name: "empty", lessonID: "", err: ErrInvalidFormat},
		{name: "non numeric year", lessonID: "abc-12-7", err: ErrInvalidFormat},
		{name: "empty part", lessonID: "2025--7", err: ErrInvalidFormat},
		{name: "trailing text", lessonID: "2025-12-7x", err: ErrInvalidFormat},
		{name: "month 13", lessonID: "2025-13-1", err: ErrInvalidDate},
		{name: "month 0", lessonID: "2025-0-1", err: ErrInvalidDate},
		{name: "february 30", lessonID: "2025-2-30", err: ErrInvalidDate},
		{name: "not a leap year", lessonID: "2023-2-29", err: ErrInvalidDate},
		{name: "day 32", lessonID: "2025-1-32", err: ErrInvalidDate},
		{name: "day 0", lessonID: "2025-1-0", err: ErrInvalidDate},
		{name: "year 0", lessonID: "0-1-1", err: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := ParseDate(tt.lessonID)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, date)
		})
	}
}

func TestIsSunday(t *testing.T) {
	assert.True(t, IsSunday(time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsSunday(time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsSunday(time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC)))
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("2025-12-7", time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, Message{
		Title: "New Sunday School Lesson!",
		Body:  "Lesson for 12/7/2025 is ready. Tap to study!",
		Data: map[string]string{
			"click_action": "FLUTTER_NOTIFICATION_CLICK",
			"date":         "2025-12-7",
		},
		Topic: "all_users",
	}, msg)
}
